package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/rota/internal/config"
	"github.com/papapumpkin/rota/internal/timetable"
	"github.com/papapumpkin/rota/internal/trace"
	"github.com/papapumpkin/rota/internal/tsv"
	"github.com/papapumpkin/rota/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "rota",
	Short: "Tab-separated timetable toolkit",
	Long: "Rota reads tab-separated timetables, shifts them through time, merges and\n" +
		"relabels them, fits their rows into slot manifests and verifies their consistency.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .rota.yaml)")
	rootCmd.PersistentFlags().String("format", "", "input time format: +S, +M, +H or an absolute layout (default: inferred)")
	rootCmd.PersistentFlags().String("out-format", "", "output time format (default: same as input)")
	rootCmd.PersistentFlags().Bool("no-color", false, "plain stderr output")
	rootCmd.PersistentFlags().String("trace", "", "append JSONL operation records to this file")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".rota")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("ROTA")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// session bundles the collaborators every subcommand shares: the resolved
// configuration, the stderr printer and the optional trace emitter.
type session struct {
	cfg     config.Config
	printer *ui.Printer
	emitter *trace.Emitter
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, printer: ui.New(cfg.Color)}
	if cfg.TracePath != "" {
		em, err := trace.NewEmitter(cfg.TracePath)
		if err != nil {
			return nil, err
		}
		s.emitter = em
	}
	return s, nil
}

// loadConfig resolves the configuration, letting persistent flags override
// file and environment values.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		cfg.Format = f
	}
	if f, _ := cmd.Flags().GetString("out-format"); f != "" {
		cfg.OutFormat = f
	}
	if v, _ := cmd.Flags().GetBool("no-color"); v {
		cfg.Color = false
	}
	if p, _ := cmd.Flags().GetString("trace"); p != "" {
		cfg.TracePath = p
	}
	return cfg, nil
}

func (s *session) close() {
	_ = s.emitter.Close()
}

// load parses the timetable at path ("-" means stdin) and records it on
// the trace.
func (s *session) load(path string) (*timetable.Timetable, timetable.Format, error) {
	tt, f, err := readTimetable(path, s.cfg.Format)
	if err != nil {
		return nil, timetable.Format{}, err
	}
	s.emitter.Emit(trace.Record{
		Kind: trace.KindParse,
		File: path,
		Data: trace.ParseSummary{Events: tt.Len(), Labels: tt.Labels().Len(), Kind: tt.Kind().String()},
	})
	return tt, f, nil
}

func readTimetable(path, selector string) (*timetable.Timetable, timetable.Format, error) {
	if path == "-" {
		return tsv.Parse(os.Stdin, selector)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, timetable.Format{}, fmt.Errorf("opening timetable: %w", err)
	}
	defer file.Close()
	tt, f, err := tsv.Parse(file, selector)
	if err != nil {
		return nil, timetable.Format{}, fmt.Errorf("%s: %w", path, err)
	}
	return tt, f, nil
}

// output prints the timetable to stdout, in the configured output format
// when one is set and the input's format otherwise.
func (s *session) output(tt *timetable.Timetable, in timetable.Format) error {
	f := in
	if of, ok := timetable.ParseSelector(s.cfg.OutFormat); ok {
		f = of
	}
	return tsv.Format(os.Stdout, tt, f)
}

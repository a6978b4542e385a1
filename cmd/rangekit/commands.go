package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/henderiw/rangekit/internal/config"
	"github.com/henderiw/rangekit/pkg/listutil"
	"github.com/henderiw/rangekit/pkg/rangeset"
	"github.com/henderiw/rangekit/pkg/ringbuffer"
	"github.com/henderiw/rangekit/pkg/seqfile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	in  io.Reader
	out io.Writer

	configPath string
	verbose    bool

	cfg        *config.Config
	logger     *zap.Logger
	logOutputs []string
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{
		in:         in,
		out:        out,
		logger:     zap.NewNop(),
		logOutputs: []string{"stderr"},
	}
}

// execute runs the command line and flushes the logger, also when the
// command fails.
func (a *app) execute(args []string) error {
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err != nil {
		a.logger.Error("command failed", zap.Error(err))
	}
	_ = a.logger.Sync()
	return err
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rangekit",
		Short:         "Range strings, sequenced file names and line buffers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level, err := zapcore.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			if a.verbose {
				level = zapcore.DebugLevel
			}
			zcfg := zap.NewProductionConfig()
			zcfg.Level = zap.NewAtomicLevelAt(level)
			zcfg.OutputPaths = a.logOutputs
			zcfg.ErrorOutputPaths = a.logOutputs
			logger, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		a.expandCmd(),
		a.collapseCmd(),
		a.nextNameCmd(),
		a.tailCmd(),
		a.uniqCmd(),
	)
	return rootCmd
}

func (a *app) expandCmd() *cobra.Command {
	var (
		tokens    bool
		collapsed bool
		exclude   string
	)
	cmd := &cobra.Command{
		Use:   "expand [range...]",
		Short: `Expand a range string, e.g. "1-4, 7" -> 1 2 3 4 7`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := strings.Join(args, ",")
			a.logger.Debug("expand", zap.String("spec", spec), zap.Bool("tokens", tokens), zap.String("exclude", exclude))
			if tokens {
				out, err := rangeset.ExpandTokens(spec)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, strings.Join(out, " "))
				return err
			}
			set, err := rangeset.Parse(spec)
			if err != nil {
				return err
			}
			if exclude != "" {
				excluded, err := rangeset.Parse(exclude)
				if err != nil {
					return err
				}
				var b rangeset.Builder
				b.AddSet(set)
				for _, r := range excluded.Ranges() {
					b.RemoveRange(r)
				}
				if set, err = b.Set(); err != nil {
					return err
				}
			}
			if collapsed {
				_, err = fmt.Fprintln(a.out, set.String())
				return err
			}
			values := set.Values()
			strs := make([]string, 0, len(values))
			for _, v := range values {
				strs = append(strs, strconv.Itoa(v))
			}
			_, err = fmt.Fprintln(a.out, strings.Join(strs, " "))
			return err
		},
	}
	cmd.Flags().BoolVarP(&tokens, "tokens", "t", false, "print the expanded names instead of integers")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "print the canonical range string instead of integers")
	cmd.Flags().StringVarP(&exclude, "exclude", "x", "", "range string of values to remove")
	return cmd
}

func (a *app) collapseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collapse [int...]",
		Short: "Collapse integers into a range string, e.g. 1 2 3 7 -> 1-3, 7",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var b rangeset.Builder
			n := 0
			for _, arg := range args {
				for _, f := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == ' ' }) {
					v, err := strconv.Atoi(f)
					if err != nil {
						return fmt.Errorf("invalid integer %q: %w", f, err)
					}
					b.Add(v)
					n++
				}
			}
			set, err := b.Set()
			if err != nil {
				return err
			}
			a.logger.Debug("collapse", zap.Int("values", n), zap.Int("ranges", len(set.Ranges())))
			_, err = fmt.Fprintln(a.out, set.String())
			return err
		},
	}
}

func (a *app) nextNameCmd() *cobra.Command {
	var (
		basename string
		ext      string
		digits   int
		create   bool
	)
	cmd := &cobra.Command{
		Use:   "nextname [dir]",
		Short: "Print the next unused <basename><n><ext> name in dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("basename") {
				basename = a.cfg.Basename
			}
			if !cmd.Flags().Changed("ext") {
				ext = a.cfg.Extension
			}
			if !cmd.Flags().Changed("digits") {
				digits = a.cfg.Digits
			}
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			g, err := seqfile.NewGenerator(dir, basename, ext,
				seqfile.WithDigits(digits),
				seqfile.WithLogger(a.logger.Named("seqfile")),
			)
			if err != nil {
				return err
			}
			if !create {
				name, err := g.Next()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, name)
				return err
			}
			f, err := g.Create()
			if err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, f.Name())
			return err
		},
	}
	cmd.Flags().StringVarP(&basename, "basename", "b", "", "file name prefix")
	cmd.Flags().StringVarP(&ext, "ext", "e", "", "file extension including the dot")
	cmd.Flags().IntVarP(&digits, "digits", "d", seqfile.DefaultDigits, "zero padding width")
	cmd.Flags().BoolVar(&create, "create", false, "create the file exclusively")
	return cmd
}

func (a *app) tailCmd() *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print the last lines of stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("lines") {
				lines = a.cfg.Capacity
			}
			ring, err := ringbuffer.New[string](lines)
			if err != nil {
				return err
			}
			scanner := bufio.NewScanner(a.in)
			n := 0
			for scanner.Scan() {
				ring.Append(scanner.Text())
				n++
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			a.logger.Debug("tail", zap.Int("read", n), zap.Int("kept", ring.Len()))
			for _, l := range ring.Items() {
				if _, err := fmt.Fprintln(a.out, l); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "number of lines to keep")
	return cmd
}

func (a *app) uniqCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uniq",
		Short: "Print the lines of stdin once, in order of first occurrence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var lines []string
			scanner := bufio.NewScanner(a.in)
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			unique := listutil.Unique(lines)
			a.logger.Debug("uniq", zap.Int("read", len(lines)), zap.Int("unique", len(unique)))
			for _, l := range unique {
				if _, err := fmt.Fprintln(a.out, l); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

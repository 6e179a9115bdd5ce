package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gridpat/internal/editor"
	"gridpat/pkg/patternfile"
)

var (
	configPath string
	startSize  int

	infoJSON bool

	renderOut    string
	renderFormat string
	renderZoom   int

	resizeForce bool
	resizeOut   string
)

var errWouldLoseData = errors.New("resize would drop active cells")

var rootCmd = &cobra.Command{
	Use:   "gridpat [file]",
	Short: "Draw patterns on a square grid in the terminal",
	Long: `gridpat is a terminal editor for on/off patterns on an NxN grid.

Click or drag to paint cells, resize the grid around its center, undo and
redo, and save patterns as JSON.

Examples:
  gridpat                   # start with an empty grid
  gridpat heart.json        # edit an existing pattern
  gridpat --size 10         # start with a 10x10 grid
  gridpat info heart.json   # print a summary`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return runEditor(path)
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty pattern file and open it",
	Args:  cobra.NoArgs,
	RunE:  runNew,
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print the size and active cells of a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := patternfile.Load(args[0])
		if err != nil {
			return err
		}
		return writeInfo(cmd.OutOrStdout(), p, infoJSON)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a pattern to PNG or text",
	Long: `Render a pattern file to an image or a plain text grid.

Examples:
  gridpat render heart.json                  # writes heart.png
  gridpat render heart.json --format txt     # writes heart.txt
  gridpat render heart.json --zoom 2 -o big.png`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var resizeCmd = &cobra.Command{
	Use:   "resize <file> <size>",
	Short: "Resize a pattern file, keeping it centered",
	Args:  cobra.ExactArgs(2),
	RunE:  runResize,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.gridpat.yaml)")
	rootCmd.Flags().IntVarP(&startSize, "size", "n", 0, "grid size for a new pattern")

	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "print the pattern file as JSON")

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default: input name with the format's extension)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "png", "output format: png or txt")
	renderCmd.Flags().IntVar(&renderZoom, "zoom", editor.DefaultZoom, "zoom factor for png output")

	resizeCmd.Flags().BoolVar(&resizeForce, "force", false, "resize even if active cells are dropped")
	resizeCmd.Flags().StringVarP(&resizeOut, "out", "o", "", "write to this file instead of in place")

	rootCmd.AddCommand(newCmd, infoCmd, renderCmd, resizeCmd)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// setupLogging opens the configured log file. Without one, logs are
// discarded since the terminal belongs to the editor.
func setupLogging(config *Config) (*slog.Logger, io.Closer, error) {
	if config.LogFile == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}
	f, err := tea.LogToFile(config.LogFile, "gridpat")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if config.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

func runEditor(path string) error {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return errors.New("gridpat needs an interactive terminal; see 'gridpat --help' for batch commands")
	}

	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger, closer, err := setupLogging(config)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	size := config.DefaultSize
	if startSize != 0 {
		size = startSize
	}
	session := editor.New(editor.Options{
		Dimension:    size,
		HistoryLimit: config.MaxHistory,
		SkipConfirm:  !config.Confirmations,
		Zoom:         config.Zoom,
		Logger:       logger,
	})

	if path != "" {
		p, err := patternfile.Load(path)
		switch {
		case err == nil:
			if err := session.ImportPattern(p); err != nil {
				return err
			}
		case errors.Is(err, os.ErrNotExist):
			// new file, created on first save
		default:
			return err
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	logger.Info("editor started", "file", path, "dimension", session.Dimension())
	m := initialModel(session, config, logger, path)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}

func runNew(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) {
		return errors.New("gridpat new needs an interactive terminal")
	}
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	size := config.DefaultSize
	options := make([]huh.Option[int], 0, len(config.Sizes))
	for _, s := range config.Sizes {
		options = append(options, huh.NewOption(fmt.Sprintf("%dx%d", s, s), s))
	}
	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Grid size").
				Options(options...).
				Value(&size),
			huh.NewInput().
				Title("File name").
				Placeholder(trimExt(patternfile.Filename(size, time.Now()), patternfile.Ext)).
				Value(&name),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = patternfile.Filename(size, time.Now())
	}
	path := config.GetSavePath(withExt(name, patternfile.Ext))
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := patternfile.Save(path, patternfile.Encode(size, nil, time.Now())); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return runEditor(path)
}

func writeInfo(w io.Writer, p patternfile.Pattern, asJSON bool) error {
	if asJSON {
		data, err := patternfile.Marshal(p)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	total := p.GridSize * p.GridSize
	fmt.Fprintf(w, "Grid:    %dx%d\n", p.GridSize, p.GridSize)
	fmt.Fprintf(w, "Active:  %d/%d\n", len(p.ActivePattern), total)
	if !p.Timestamp.IsZero() {
		fmt.Fprintf(w, "Saved:   %s\n", p.Timestamp.Format("2006-01-02 15:04:05"))
	}
	if p.Version != "" {
		fmt.Fprintf(w, "Version: %s\n", p.Version)
	}
	return nil
}

func sessionFor(p patternfile.Pattern) (*editor.Session, error) {
	s := editor.New(editor.Options{Dimension: p.GridSize})
	if err := s.ImportPattern(p); err != nil {
		return nil, err
	}
	return s, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := patternfile.Load(args[0])
	if err != nil {
		return err
	}
	session, err := sessionFor(p)
	if err != nil {
		return err
	}

	out := renderOut
	if out == "" {
		out = trimExt(args[0], patternfile.Ext) + "." + renderFormat
	}
	switch renderFormat {
	case "png":
		err = exportPNG(out, session, renderZoom)
	case "txt":
		err = exportTXT(out, session)
	default:
		return fmt.Errorf("unknown format %q (want png or txt)", renderFormat)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s\n", out)
	return nil
}

// resizePattern resizes p around its center. Without force a shrink that
// drops active cells fails with errWouldLoseData.
func resizePattern(p patternfile.Pattern, size int, force bool) (patternfile.Pattern, error) {
	session, err := sessionFor(p)
	if err != nil {
		return patternfile.Pattern{}, err
	}
	res, err := session.Resize(size)
	if err != nil {
		return patternfile.Pattern{}, err
	}
	if res.NeedsConfirmation {
		if !force {
			return patternfile.Pattern{}, fmt.Errorf("%dx%d to %dx%d: %w (use --force)", res.From, res.From, res.To, res.To, errWouldLoseData)
		}
		if err := session.ConfirmResize(size); err != nil {
			return patternfile.Pattern{}, err
		}
	}
	return session.ExportSnapshot(), nil
}

func runResize(cmd *cobra.Command, args []string) error {
	size, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid size %q", args[1])
	}
	p, err := patternfile.Load(args[0])
	if err != nil {
		return err
	}
	resized, err := resizePattern(p, size, resizeForce)
	if err != nil {
		return err
	}
	out := resizeOut
	if out == "" {
		out = args[0]
	}
	if err := patternfile.Save(out, resized); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Resized to %dx%d, %d active cells, wrote %s\n",
		resized.GridSize, resized.GridSize, len(resized.ActivePattern), out)
	return nil
}

// pv-plot - Solar panel measurement plotter
//
// Loads measurements from a file (CSV, CSV.gz, XLSX, XLS, Parquet) or from a
// ClickHouse session, applies optional cell edits, validates the data and
// renders the selected series as a scatter chart PNG.
//
// X may be a direct column (Time, Solar Radiation, ...) or a grouped column
// (Voltage, Current, Power, Efficiency, Panel Temperature) that resolves to
// the mono or poly field of each Y series.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/pv-plot ./cmd/pv-plot

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/KI7MT/ki7mt-pv-lab/internal/chstore"
	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
	"github.com/KI7MT/ki7mt-pv-lab/internal/importer"
	"github.com/KI7MT/ki7mt-pv-lab/internal/plot"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ";") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// cellEdit is one "ROW:COLUMN=VALUE" edit; ROW is 1-based.
type cellEdit struct {
	Row    int
	Column solar.Column
	Value  string
}

func parseEdit(s string) (cellEdit, error) {
	target, value, ok := strings.Cut(s, "=")
	if !ok {
		return cellEdit{}, fmt.Errorf("edit %q: expected ROW:COLUMN=VALUE", s)
	}
	rowText, colText, ok := strings.Cut(target, ":")
	if !ok {
		return cellEdit{}, fmt.Errorf("edit %q: expected ROW:COLUMN=VALUE", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowText))
	if err != nil || row < 1 {
		return cellEdit{}, fmt.Errorf("edit %q: invalid row", s)
	}
	col, err := solar.ParseColumn(colText)
	if err != nil {
		return cellEdit{}, fmt.Errorf("edit %q: %w", s, err)
	}
	return cellEdit{Row: row, Column: col, Value: value}, nil
}

func listSessions(ctx context.Context, cfg *common.Config, w io.Writer, logger *zap.Logger) error {
	reader, err := chstore.Open(ctx, chstore.OptionsFromConfig(cfg), logger)
	if err != nil {
		return err
	}
	defer reader.Close()

	sessions, err := reader.Sessions(ctx)
	if err != nil {
		return err
	}
	printSessions(w, sessions)
	return nil
}

func printSessions(w io.Writer, sessions []chstore.SessionInfo) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No stored sessions")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SESSION	ROWS	LAST INSERT\n")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s	%d	%s\n", s.Session, s.Rows, s.LastInsert.UTC().Format("2006-01-02 15:04:05"))
	}
	tw.Flush()
}

func loadRecords(ctx context.Context, cfg *common.Config, inPath, session string, logger *zap.Logger) ([]solar.Record, error) {
	if session != "" {
		reader, err := chstore.Open(ctx, chstore.OptionsFromConfig(cfg), logger)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		return reader.Load(ctx, session)
	}

	records, _, err := importer.ImportFile(inPath, logger)
	return records, err
}

func applyEdits(store *solar.Store, addRows int, removes []int, edits []cellEdit) error {
	for i := 0; i < addRows; i++ {
		store.AddDefault()
	}
	for _, e := range edits {
		if err := store.SetCell(e.Row-1, e.Column, e.Value); err != nil {
			return fmt.Errorf("row %d %s: %w", e.Row, e.Column, err)
		}
	}
	// Highest row first so earlier removals don't shift later ones
	for i := len(removes) - 1; i >= 0; i-- {
		if err := store.Remove(removes[i] - 1); err != nil {
			return fmt.Errorf("remove row %d: %w", removes[i], err)
		}
	}
	return nil
}

func parseSelection(x, ys, yStart string) (plot.Selection, error) {
	var sel plot.Selection
	if strings.TrimSpace(x) != "" {
		col, err := solar.ParseColumn(x)
		if err != nil {
			return sel, err
		}
		sel.X = col
	}
	for _, name := range strings.Split(ys, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		col, err := solar.ParseColumn(name)
		if err != nil {
			return sel, err
		}
		sel.Toggle(col)
	}
	sel.YStart = yStart
	return sel, nil
}

func parseRows(s string) ([]int, error) {
	var rows []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid row %q", part)
		}
		rows = append(rows, n)
	}
	// Duplicates would remove the neighbouring row as well
	slices.Sort(rows)
	return slices.Compact(rows), nil
}

func printSummary(log *zap.SugaredLogger, c plot.Chart) {
	log.Infof("Title:   %s", strings.ReplaceAll(c.Title, "\n", " | "))
	log.Infof("X axis:  %s", c.XLabel)
	log.Infof("Y axis:  %s", c.YLabel)
	for _, s := range c.Result.Series {
		if len(s.Points) == 0 {
			log.Infof("  %-20s %6d points", s.Name, 0)
			continue
		}
		var yr plot.Range
		for _, p := range s.Points {
			yr.Add(p.Y)
		}
		log.Infof("  %-20s %6d points  y=[%g, %g] %s", s.Name, len(s.Points), yr.Min, yr.Max, s.Unit)
	}
	if !c.Scaled {
		log.Info("Axes:    auto (no points)")
		return
	}
	log.Infof("X range: [%s, %s] tick %g",
		plot.FormatTick(c.Axes.X.Lower, c.TimeAxis), plot.FormatTick(c.Axes.X.Upper, c.TimeAxis), c.Axes.X.TickUnit)
	log.Infof("Y range: [%g, %g] tick %g", c.Axes.Y.Lower, c.Axes.Y.Upper, c.Axes.Y.TickUnit)
}

func main() {
	envFile := flag.String("env", "", "Env file with ClickHouse/chart settings (default ./.env)")
	inPath := flag.String("in", "", "Input file (.csv, .csv.gz, .xlsx, .xls, .parquet)")
	session := flag.String("ch-session", "", "Load records of this ClickHouse session instead of -in")
	listOnly := flag.Bool("list-sessions", false, "List stored ClickHouse sessions and exit")
	xCol := flag.String("x", "Time", "X-axis column (see pv-columns)")
	yCols := flag.String("y", "", "Comma-separated Y-axis columns, in series order")
	yStart := flag.String("y-start", "", "Y-axis lower bound override")
	location := flag.String("location", "", "Experiment location for the title")
	lat := flag.String("lat", "", "Latitude for the title")
	lon := flag.String("lon", "", "Longitude for the title")
	xLabel := flag.String("x-label", "", "X-axis label (default: column name)")
	yLabel := flag.String("y-label", "", "Y-axis label (default: column name or Parameters)")
	addRows := flag.Int("add-rows", 0, "Append this many default rows (time 00:00, zeros)")
	removeRows := flag.String("remove", "", "Comma-separated 1-based rows to remove")
	outPath := flag.String("out", plot.DefaultExportName, "Output PNG path")
	width := flag.Int("width", 0, "Canvas width (default from config)")
	height := flag.Int("height", 0, "Canvas height (default from config)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	var edits listFlag
	flag.Var(&edits, "set", "Cell edit ROW:COLUMN=VALUE (1-based row, repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pv-plot v%s - Solar Panel Measurement Plotter\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] -in FILE -y COLUMNS\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Renders selected measurement series as a scatter chart.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s -in day1.xlsx -y P_mono,P_poly\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -in day1.csv -x Voltage -y I_mono,I_poly -out iv.png\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -ch-session day1 -y \"Solar Radiation\" -set 3:Time=09:15\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -list-sessions\n\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	cfg, err := common.LoadConfig(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	logger := common.MustLogger(common.NewLogger(cfg.LogLevel))
	defer logger.Sync()
	log := logger.Sugar()

	if *listOnly {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := listSessions(ctx, cfg, os.Stdout, logger); err != nil {
			log.Fatalf("List sessions failed: %v", err)
		}
		return
	}

	if *inPath == "" && *session == "" {
		flag.Usage()
		os.Exit(1)
	}

	log.Info("=========================================================")
	log.Infof("PV Plot v%s", Version)
	log.Info("=========================================================")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Shutdown requested...")
		cancel()
	}()

	startTime := time.Now()

	sel, err := parseSelection(*xCol, *yCols, *yStart)
	if err != nil {
		log.Fatalf("Invalid column: %v", err)
	}

	var parsedEdits []cellEdit
	for _, e := range edits {
		edit, err := parseEdit(e)
		if err != nil {
			log.Fatalf("Invalid edit: %v", err)
		}
		parsedEdits = append(parsedEdits, edit)
	}
	removes, err := parseRows(*removeRows)
	if err != nil {
		log.Fatalf("Invalid -remove: %v", err)
	}

	source := *session
	if source == "" {
		source = filepath.Base(*inPath)
	}
	log.Infof("Source: %s", source)

	records, err := loadRecords(ctx, cfg, *inPath, *session, logger)
	if err != nil {
		log.Fatalf("Load failed: %v", err)
	}

	store := solar.NewStore(records...)
	if err := applyEdits(store, *addRows, removes, parsedEdits); err != nil {
		log.Fatalf("Edit failed: %v", err)
	}
	log.Infof("Rows: %d", store.Len())

	if err := plot.Validate(store, sel); err != nil {
		if errors.Is(err, plot.ErrInvalidTime) {
			log.Errorf("Invalid time rows: %v", store.InvalidTimes())
		}
		log.Fatalf("Cannot generate graph: %v", err)
	}

	chart := plot.NewChart(store.Records(), sel, plot.GraphConfig{
		ExperimentLocation: *location,
		Latitude:           *lat,
		Longitude:          *lon,
		XAxisLabel:         *xLabel,
		YAxisLabel:         *yLabel,
	})
	printSummary(log, chart)

	w, h := cfg.ChartWidth, cfg.ChartHeight
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}
	w, h = plot.CanvasSize(w, h)

	if err := plot.RenderFile(*outPath, chart, w, h); err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	log.Info("=========================================================")
	log.Infof("Chart:   %s (%dx%d)", *outPath, w, h)
	log.Infof("Series:  %d", len(chart.Result.Series))
	log.Infof("Points:  %d", chart.Result.Points())
	log.Infof("Elapsed: %v", time.Since(startTime).Round(time.Millisecond))
	log.Info("=========================================================")
}

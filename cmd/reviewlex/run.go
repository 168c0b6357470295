package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/gosuri/uiprogress"
	"go.uber.org/zap"

	"github.com/tsawler/reviewlex"
)

// errModeMismatch reports a sequential and a concurrent run that disagree.
var errModeMismatch = errors.New("sequential and concurrent reports differ")

func runCommand(ctx context.Context, cfg Config, progress bool, ui UI) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))
	started := time.Now()
	log.Info("run started", zap.String("mode", cfg.Run.Mode), zap.String("dataset", cfg.Dataset.Path))

	records, err := reviewlex.LoadReviews(cfg.Dataset.Path, cfg.Dataset.loadOpts()...)
	if err != nil {
		log.Error("loading dataset failed", zap.Error(err))
		return err
	}
	log.Info("dataset loaded", zap.Int("records", len(records)))

	res, err := cfg.Lexicon.loadResources()
	if err != nil {
		log.Error("loading lexicon failed", zap.Error(err))
		return err
	}
	log.Info("lexicon loaded",
		zap.Int("stopwords", res.Stopwords.Len()),
		zap.Int("nouns", res.Nouns.Len()),
		zap.Int("sentiment_words", res.Lexicon.Len()),
	)

	seg, err := cfg.Run.segmenter()
	if err != nil {
		return fmt.Errorf("failed to load sentence model: %w", err)
	}

	var modes []bool
	switch cfg.Run.Mode {
	case ModeSequential:
		modes = []bool{false}
	case ModeConcurrent:
		modes = []bool{true}
	default:
		modes = []bool{false, true}
	}

	summary := Summary{
		RunID:     runID,
		Mode:      cfg.Run.Mode,
		StartedAt: started,
		Durations: make(map[string]int64),
	}

	var reports []*reviewlex.Report
	for i, concurrent := range modes {
		opts := []reviewlex.AnalyzeOpt{
			reviewlex.WithConcurrency(concurrent),
			reviewlex.WithWorkers(cfg.Run.Workers),
			reviewlex.WithTopWords(cfg.Run.TopWords),
			reviewlex.WithSegmenter(seg),
			reviewlex.WithLogger(log),
		}

		var p *uiprogress.Progress
		if progress && i == 0 && len(records) > 0 {
			p = uiprogress.New()
			p.Out = ui.Err
			bar := p.AddBar(len(records))
			bar.AppendCompleted()
			bar.PrependElapsed()
			p.Start()
			opts = append(opts, reviewlex.WithProgress(func(done int) {
				_ = bar.Set(done)
			}))
		}

		rep, err := reviewlex.Analyze(ctx, records, res, opts...)
		if p != nil {
			p.Stop()
		}
		if err != nil {
			log.Error("analysis failed", zap.Error(err))
			return err
		}

		name := ModeSequential
		if concurrent {
			name = ModeConcurrent
		}
		for step, d := range rep.Timings {
			summary.Durations[name+"."+step] = d.Milliseconds()
		}
		reports = append(reports, rep)
	}

	if len(reports) == 2 && !sameReport(reports[0], reports[1]) {
		log.Error("reports differ between modes")
		return errModeMismatch
	}
	rep := reports[len(reports)-1]

	w, err := newReportWriter(cfg.Output.Dir, log)
	if err != nil {
		return err
	}
	if err := w.writeReport(rep); err != nil {
		log.Error("writing reports failed", zap.Error(err))
		return err
	}

	summary.Records = len(rep.Records)
	summary.Products = len(rep.AverageRatings)
	summary.Keywords = len(rep.KeywordCorpus)
	summary.Durations["total"] = time.Since(started).Milliseconds()
	if err := w.writeSummary(summary); err != nil {
		return err
	}

	log.Info("run finished", zap.String("reports", w.dir), zap.Duration("took", time.Since(started)))
	_, err = fmt.Fprintf(ui.Out, "%d reviews analysed, reports written to %s\n", len(rep.Records), w.dir)
	return err
}

// sameReport compares the content of two reports, ignoring timings.
func sameReport(a, b *reviewlex.Report) bool {
	x, y := *a, *b
	x.Timings, y.Timings = nil, nil
	return reflect.DeepEqual(x, y)
}

func normalizeCommand(args []string, stdin io.Reader, ui UI) error {
	if len(args) > 0 {
		for _, arg := range args {
			if _, err := fmt.Fprintln(ui.Out, reviewlex.Normalize(arg)); err != nil {
				return err
			}
		}
		return nil
	}

	scan := bufio.NewScanner(stdin)
	scan.Buffer(make([]byte, 64*1024), 1<<20)
	for scan.Scan() {
		if _, err := fmt.Fprintln(ui.Out, reviewlex.Normalize(scan.Text())); err != nil {
			return err
		}
	}
	return scan.Err()
}

func scoreCommand(cfg Config, args []string, ui UI) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: score needs at least one text", reviewlex.ErrConfiguration)
	}
	lex, err := reviewlex.LoadSentimentLexicon(cfg.Lexicon.Sentiment)
	if err != nil {
		return err
	}
	sa := reviewlex.NewSentimentAnalyzer(lex)
	for _, arg := range args {
		text := reviewlex.Normalize(arg)
		score, label := sa.Analyze(text)
		if _, err := fmt.Fprintf(ui.Out, "%.3f\t%s\t%s\n", score, label, text); err != nil {
			return err
		}
	}
	return nil
}

package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/bridgeplans/constants"
	"github.com/joseph-ayodele/bridgeplans/internal/common"
	"github.com/joseph-ayodele/bridgeplans/internal/entity"
)

// DocumentProcessor turns one PDF into a record. *Processor implements it.
type DocumentProcessor interface {
	ProcessFile(ctx context.Context, path string) (entity.BridgeWorkRecord, error)
}

// Batch runs a DocumentProcessor over every PDF of a directory, one at a time.
type Batch struct {
	Processor DocumentProcessor
	Progress  io.Writer // console progress lines; nil = none
	Logger    *slog.Logger
}

func NewBatch(p DocumentProcessor, progress io.Writer, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Batch{Processor: p, Progress: progress, Logger: logger}
}

// ListPDFs returns the files directly inside dir whose extension is .pdf in
// any case, in directory order. A missing or unreadable dir is ErrBatchIO.
func ListPDFs(dir string) ([]entity.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, common.BatchIOError("read input dir", err)
	}
	if !info.IsDir() {
		return nil, common.BatchIOError("read input dir", fmt.Errorf("%s is not a directory", dir))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.BatchIOError("read input dir", err)
	}
	docs := make([]entity.Document, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !constants.IsPDF(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !e.Type().IsRegular() {
			// follow symlinks, skip anything that is not a plain file
			st, err := os.Stat(path)
			if err != nil || !st.Mode().IsRegular() {
				continue
			}
		}
		docs = append(docs, entity.NewDocument(path))
	}
	return docs, nil
}

// Run processes every PDF in dir and returns one row per file in enumeration
// order. A failing or panicking document becomes a failure row and the batch
// moves on. Only a dir listing failure or a canceled ctx returns an error, and
// then no rows are returned.
func (b *Batch) Run(ctx context.Context, dir string) ([]entity.ResultRow, error) {
	start := time.Now()
	runID := uuid.New().String()
	ctx = common.WithRunID(ctx, runID)
	log := common.LoggerFrom(ctx, b.Logger)

	docs, err := ListPDFs(dir)
	if err != nil {
		log.Error("batch.list.failed", "dir", dir, "err", err)
		return nil, err
	}
	log.Info("batch.start", "dir", dir, "documents", len(docs))

	rows := make([]entity.ResultRow, 0, len(docs))
	failures := 0
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			log.Warn("batch.canceled", "done", i, "documents", len(docs))
			return nil, err
		}
		fmt.Fprintf(b.Progress, "\nProcessing: %s\n", doc.FileName)

		rec, err := b.processOne(ctx, doc)
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Warn("batch.canceled", "done", i, "documents", len(docs))
			return nil, ctxErr
		}
		if err != nil {
			failures++
			fmt.Fprintf(b.Progress, "Error processing %s: %v\n", doc.FileName, err)
			log.Error("batch.document.failed", "file", doc.FileName, "index", i, "err", err)
			rows = append(rows, entity.FailureRow(doc.FileName, err))
			continue
		}
		rows = append(rows, rec.ToRow(doc.FileName))
	}

	log.Info("batch.done",
		"documents", len(docs),
		"succeeded", len(docs)-failures,
		"failed", failures,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rows, nil
}

func (b *Batch) processOne(ctx context.Context, doc entity.Document) (rec entity.BridgeWorkRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = common.NewAppError(common.CodeDocumentPanic, doc.FileName, fmt.Errorf("panic: %v", r))
		}
	}()
	return b.Processor.ProcessFile(ctx, doc.Path)
}

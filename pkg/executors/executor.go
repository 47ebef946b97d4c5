package executors

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"

	"github.com/yurifrl/residentledger/pkg/parser"
	"github.com/yurifrl/residentledger/pkg/plan"
	"github.com/yurifrl/residentledger/pkg/reconcile"
	"github.com/yurifrl/residentledger/pkg/store"
)

type Executor struct {
	logger    *log.Logger
	parser    *parser.Parser
	store     store.Store
	opts      reconcile.Options
	maxErrors int
	out       io.Writer
	dumper    *pp.PrettyPrinter
	now       func() time.Time
}

func New(logger *log.Logger, s store.Store, opts reconcile.Options, maxErrors int) *Executor {
	return &Executor{
		logger:    logger,
		parser:    parser.New(logger),
		store:     s,
		opts:      opts,
		maxErrors: maxErrors,
		out:       os.Stdout,
		now:       time.Now,
	}
}

// SetOutput redirects everything the executor prints.
func (e *Executor) SetOutput(w io.Writer) {
	e.out = w
	if e.dumper != nil {
		e.dumper.SetOutput(w)
	}
}

// EnableDump pretty-prints reports and summaries after the regular output.
func (e *Executor) EnableDump() {
	e.dumper = pp.New()
	e.dumper.SetOutput(e.out)
	e.dumper.SetColoringEnabled(false)
}

func (e *Executor) SetClock(now func() time.Time) {
	e.now = now
}

func (e *Executor) dump(v any) {
	if e.dumper != nil {
		e.dumper.Println(v)
	}
}

func (e *Executor) engine(wb plan.Workbook) *reconcile.Engine {
	opts := e.opts
	if wb.UpdateExisting != nil {
		opts.UpdateExisting = *wb.UpdateExisting
	}
	eng := reconcile.New(e.store, e.logger, opts)
	eng.SetClock(e.now)
	return eng
}

// load reads and parses one plan workbook, keeping only the selected sheets.
func (e *Executor) load(p *plan.Plan, wb plan.Workbook) (*parser.Workbook, error) {
	path, err := p.Path(wb)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	book, err := e.parser.ProcessBytes(data, path)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", path, err)
	}

	sheets := book.Sheets[:0]
	for _, s := range book.Sheets {
		if wb.WantsSheet(s.Name) {
			sheets = append(sheets, s)
		}
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: none of the sheets %v found", path, wb.Sheets)
	}
	book.Sheets = sheets
	return book, nil
}

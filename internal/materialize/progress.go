package materialize

import (
	"log/slog"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"ttsprep/internal/logging"
)

type progress struct {
	mu      sync.Mutex
	total   int
	done    int
	bar     *progressbar.ProgressBar
	sampler *logging.ProgressSampler
	logger  *slog.Logger
}

func newProgress(total int, terminal *os.File, logger *slog.Logger) *progress {
	p := &progress{total: total, logger: logger}
	if terminal != nil && isTerminal(terminal) && total > 0 {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(terminal),
			progressbar.OptionSetDescription("converting audio"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		return p
	}
	p.sampler = logging.NewProgressSampler(10)
	return p
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *progress) tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.bar != nil {
		_ = p.bar.Add(1)
		return
	}
	if percent, ok := p.sampler.Observe(p.done, p.total); ok {
		p.logger.Info("conversion progress",
			logging.Int("done", p.done),
			logging.Int("total", p.total),
			logging.Float64("percent", percent),
		)
	}
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

package trace

import (
	"errors"
	"io"
	"sort"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapTracer routes events to a zap.Logger as structured JSON records.
type ZapTracer struct {
	log    *zap.Logger
	closer io.Closer
	level  Level
}

// NewZapTracer writes JSON records to w. A w implementing io.Closer is closed by Close.
func NewZapTracer(w io.Writer, level Level) *ZapTracer {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.MessageKey = "name"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), zapcore.DebugLevel)

	t := &ZapTracer{log: zap.New(core), level: level}
	if c, ok := w.(io.Closer); ok {
		t.closer = c
	}
	return t
}

// NewZapTracerFromLogger traces into an existing logger.
func NewZapTracerFromLogger(log *zap.Logger, level Level) *ZapTracer {
	return &ZapTracer{log: log, level: level}
}

func (t *ZapTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	ev.Seq = NextSeq()

	lvl := zapcore.DebugLevel
	switch {
	case ev.Extra["error"] != "":
		lvl = zapcore.ErrorLevel
	case ev.Scope <= ScopeFile:
		lvl = zapcore.InfoLevel
	}
	ce := t.log.Check(lvl, ev.Name)
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, 8+len(ev.Extra))
	fields = append(fields,
		zap.Uint64("seq", ev.Seq),
		zap.String("kind", ev.Kind.String()),
		zap.String("scope", ev.Scope.String()),
		zap.Uint64("span_id", ev.SpanID),
	)
	if ev.ParentID != 0 {
		fields = append(fields, zap.Uint64("parent_id", ev.ParentID))
	}
	if ev.GID != 0 {
		fields = append(fields, zap.Uint64("gid", ev.GID))
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fields = append(fields, zap.String("extra."+k, ev.Extra[k]))
		}
	}
	ce.Time = ev.Time
	ce.Write(fields...)
}

// Flush syncs the logger. Terminals and pipes reject fsync; that is not an error.
func (t *ZapTracer) Flush() error {
	err := t.log.Sync()
	if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}

func (t *ZapTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

func (t *ZapTracer) Level() Level  { return t.level }
func (t *ZapTracer) Enabled() bool { return t.level > LevelOff }

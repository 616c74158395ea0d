package services

import (
	"io"

	"github.com/opentracing/opentracing-go"

	"github.com/DhruvSimform/email-library/config"
	"github.com/DhruvSimform/email-library/internal/logger"
	"github.com/DhruvSimform/email-library/internal/tracing"
)

// InitTracing builds the jaeger tracer from config and installs it as the
// opentracing global tracer, so every reader and adapter span reports
// through it. The returned closer flushes buffered spans; callers should
// close it on shutdown. With tracing disabled a no-op tracer is installed
// and nothing is reported.
func InitTracing(cfg *config.Config, log logger.Logger) (io.Closer, error) {
	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, log)
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}

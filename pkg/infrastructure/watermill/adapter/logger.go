package adapter

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/mateusmacedo/go-checkout/pkg/application"
)

// watermillLoggerAdapter encaminha os logs internos do watermill para o AppLogger.
type watermillLoggerAdapter struct {
	appLogger application.AppLogger
	fields    watermill.LogFields
}

func NewWatermillLoggerAdapter(appLogger application.AppLogger) watermill.LoggerAdapter {
	return &watermillLoggerAdapter{
		appLogger: appLogger,
		fields:    watermill.LogFields{"component": "watermill"},
	}
}

func (a *watermillLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	application.LogError(context.Background(), a.appLogger, msg, err, a.fields.Add(fields))
}

func (a *watermillLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.appLogger.Info(context.Background(), msg, a.fields.Add(fields))
}

func (a *watermillLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.appLogger.Debug(context.Background(), msg, a.fields.Add(fields))
}

func (a *watermillLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.appLogger.Trace(context.Background(), msg, a.fields.Add(fields))
}

func (a *watermillLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLoggerAdapter{
		appLogger: a.appLogger,
		fields:    a.fields.Add(fields),
	}
}

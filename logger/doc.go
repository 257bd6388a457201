// Package logger provides structured logging over zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers carrying structured fields. Request ids placed
// on the context with ContextWithRequestID are picked up by WithContext.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("consultation")
//	log.Info("stage finished", logger.Fields("stage", "transcribe"))
package logger

package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	ospath "path"
	"time"

	rolling "github.com/arthurkiller/rollingWriter"
	"github.com/shafreeck/configo"
	"github.com/shafreeck/continuous"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/distributedio/respd"
	"github.com/distributedio/respd/conf"
	"github.com/distributedio/respd/metrics"
)

func main() {
	var showVersion bool
	var confPath string
	var listen string

	flag.BoolVar(&showVersion, "v", false, "Show Version")
	flag.StringVar(&confPath, "c", "conf/respd.toml", "conf file path")
	flag.StringVar(&listen, "listen", "", "address to listen, overrides the conf file")
	flag.Parse()

	if showVersion {
		respd.PrintVersionInfo(os.Stdout)
		return
	}

	config := &conf.Respd{}
	if err := configo.Load(confPath, config); err != nil {
		fmt.Printf("unmarshal config file failed, %s\n", err)
		os.Exit(1)
	}
	if listen != "" {
		config.Server.Listen = listen
	}

	if err := ConfigureZap(config.Logger.Name, config.Logger.Path, config.Logger.Level,
		config.Logger.TimeRotate, config.Logger.Compress); err != nil {
		fmt.Printf("create logger failed, %s\n", err)
		os.Exit(1)
	}
	respd.LogServerInfo(&config.Server)

	svr := metrics.NewServer(&config.Status)
	serv := respd.New(respd.NewServerContext(&config.Server))

	writer, err := Writer(config.Logger.Path, config.Logger.TimeRotate, config.Logger.Compress)
	if err != nil {
		zap.L().Fatal("create writer for continuous failed", zap.Error(err))
	}
	cont := continuous.New(continuous.LoggerOutput(writer), continuous.PidFile(config.PIDFileName))
	if err := cont.AddServer(serv, &continuous.ListenOn{Network: "tcp", Address: config.Server.Listen}); err != nil {
		zap.L().Fatal("add respd server failed:", zap.Error(err))
	}

	if err := cont.AddServer(svr, &continuous.ListenOn{Network: "tcp", Address: config.Status.Listen}); err != nil {
		zap.L().Fatal("add statues server failed:", zap.Error(err))
	}

	if err := cont.Serve(); err != nil {
		zap.L().Fatal("run server failed:", zap.Error(err))
	}
}

// parseLevel maps the configured level name to a zap level
func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zap.DebugLevel, nil
	case "info":
		return zap.InfoLevel, nil
	case "warn":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	case "panic":
		return zap.PanicLevel, nil
	case "fatal":
		return zap.FatalLevel, nil
	}
	return zap.InfoLevel, fmt.Errorf("unknown log level(%s)", level)
}

// ConfigureZap customize the zap logger
func ConfigureZap(name, path, level, pattern string, compress bool) error {
	writer, err := Writer(path, pattern, compress)
	if err != nil {
		return err
	}

	l, err := parseLevel(level)
	if err != nil {
		return err
	}
	lv := zap.NewAtomicLevelAt(l)

	timeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Local().Format("2006-01-02 15:04:05.999999999"))
	}

	encoderCfg := zapcore.EncoderConfig{
		NameKey:        "Name",
		StacktraceKey:  "Stack",
		MessageKey:     "Message",
		LevelKey:       "Level",
		TimeKey:        "TimeStamp",
		CallerKey:      "Caller",
		EncodeTime:     timeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	output := zapcore.AddSync(writer)
	var zapOpts []zap.Option
	zapOpts = append(zapOpts, zap.AddCaller())
	zapOpts = append(zapOpts, zap.Hooks(metrics.Measure))

	logger := zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), output, lv), zapOpts...)
	logger = logger.Named(name)
	log := logger.With(zap.Int("PID", os.Getpid()))
	zap.ReplaceGlobals(log)
	//http change log level
	http.Handle("/respd/log/level", lv)

	return nil
}

//Writer generate the rollingWriter, stdout and stderr are passed through
func Writer(path, pattern string, compress bool) (io.Writer, error) {
	switch path {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	var opts []rolling.Option
	opts = append(opts, rolling.WithRollingTimePattern(pattern))
	if compress {
		opts = append(opts, rolling.WithCompress())
	}
	dir, filename := ospath.Split(path)
	opts = append(opts, rolling.WithLogPath(dir), rolling.WithFileName(filename), rolling.WithLock())
	writer, err := rolling.NewWriter(opts...)
	if err != nil {
		return nil, fmt.Errorf("create IOWriter failed, %s", err)
	}
	return writer, nil
}

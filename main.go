package main

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/john/ytchat/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var opts struct {
	Config    string `long:"config" env:"CONFIG_PATH" default:"config.yaml" description:"path to the YAML config file"`
	LogLevel  string `long:"log-level" env:"YTCHAT_LOG_LEVEL" default:"info" description:"log level (trace, debug, info, warn, error)"`
	PrettyLog bool   `long:"pretty-log" description:"colored console logs instead of JSON lines"`
}

var log = zerolog.Nop()

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		l, err := logger.New(opts.LogLevel, opts.PrettyLog)
		if err != nil {
			return err
		}
		log = l
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	if _, err := parser.AddCommand("decode", "Decode live chat documents",
		"Decodes initial or update live chat documents and writes one JSON line per chat event.",
		&decodeCommand{}); err != nil {
		panic(err)
	}
	if _, err := parser.AddCommand("params", "Print a get_live_chat request",
		"Builds the get_live_chat request for a continuation token from the config file.",
		&paramsCommand{}); err != nil {
		panic(err)
	}

	// parser errors, command errors included, are printed by go-flags
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

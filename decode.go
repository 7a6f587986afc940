package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/john/ytchat/internal/config"
	"github.com/john/ytchat/internal/message"
	"github.com/john/ytchat/internal/recorder"
	"github.com/john/ytchat/internal/uploader"
	"github.com/john/ytchat/livechat"
)

type decodeCommand struct {
	Update          bool   `long:"update" description:"decode continuation poll responses instead of initial page data"`
	Channel         string `long:"channel" default:"unknown" description:"channel name recorded with every event"`
	Record          bool   `long:"record" description:"write rotating JSONL files to recorder.output_dir instead of stdout"`
	OutputDir       string `long:"output-dir" description:"directory of the JSONL files, overrides recorder.output_dir (implies --record)"`
	BufferSize      int    `long:"buffer-size" description:"records buffered per file before flushing, overrides recorder.buffer_size"`
	RotateMegabytes int    `long:"rotate-megabytes" description:"file size that starts a new file, overrides recorder.rotate_megabytes"`
	Upload          bool   `long:"upload" description:"upload the written files to the S3 bucket from the config file (implies --record)"`

	Args struct {
		Files []string `positional-arg-name:"FILE" description:"documents to decode, stdin when none"`
	} `positional-args:"yes"`
}

// Execute implements flags.Commander.
func (c *decodeCommand) Execute([]string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	var up *uploader.Uploader
	if c.Upload {
		if err := cfg.ValidateS3(); err != nil {
			return err
		}
		up, err = uploader.New(context.Background(), cfg.S3, cfg.Uploader, log)
		if err != nil {
			return fmt.Errorf("create uploader: %w", err)
		}
	}

	sink, finish := c.stdoutSink(os.Stdout)
	if c.recording() {
		sink, finish = c.recorderSink(c.recorderConfig(cfg.Recorder))
	}

	inputs := c.Args.Files
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	failed := 0
	for _, name := range inputs {
		data, err := readInput(name)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("Failed to read document")
			failed++
			continue
		}
		if err := c.decodeDocument(name, data, sink); err != nil {
			log.Error().Err(err).Str("file", name).Msg("Failed to decode document")
			failed++
		}
	}

	files, err := finish()
	if err != nil {
		return err
	}
	if up != nil {
		if err := up.Upload(context.Background(), files); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(inputs))
	}
	return nil
}

// loadConfig reads the config file. Without --upload a missing file is not an
// error and the defaults apply.
func (c *decodeCommand) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if errors.Is(err, os.ErrNotExist) && !c.Upload {
		log.Debug().Str("path", opts.Config).Msg("No config file, using defaults")
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *decodeCommand) recording() bool {
	return c.Record || c.OutputDir != "" || c.Upload
}

// recorderConfig applies the command line overrides to the configured
// recorder settings.
func (c *decodeCommand) recorderConfig(rc config.RecorderConfig) config.RecorderConfig {
	if c.OutputDir != "" {
		rc.OutputDir = c.OutputDir
	}
	if c.BufferSize > 0 {
		rc.BufferSize = c.BufferSize
	}
	if c.RotateMegabytes > 0 {
		rc.RotateMegabytes = c.RotateMegabytes
	}
	return rc
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// decodeDocument decodes one document and passes its records to sink. A
// document without chat contents yields no records.
func (c *decodeCommand) decodeDocument(name string, data []byte, sink sinkFunc) error {
	log.Debug().Str("file", name).Bytes("json", data).Msg("Decoding document")

	kind := "initial"
	var chat *livechat.LiveChat
	if c.Update {
		kind = "update"
		doc, err := livechat.DecodeUpdate(data)
		if err != nil {
			return fmt.Errorf("decode update: %w", err)
		}
		chat = doc.Continuation
	} else {
		doc, err := livechat.DecodeInitial(data)
		if err != nil {
			return fmt.Errorf("decode initial: %w", err)
		}
		chat = doc.Contents
	}

	if chat == nil {
		log.Warn().Str("file", name).Str("kind", kind).Msg("Document has no live chat")
		return nil
	}

	timeout, _ := chat.Next()
	actions := chat.ActionList()
	log.Info().
		Str("file", name).
		Str("kind", kind).
		Uint32("timeout_ms", timeout).
		Int("actions", len(actions)).
		Msg("Decoded document")

	for _, msg := range message.FromActions(c.Channel, actions) {
		if err := sink(msg); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	return nil
}

type (
	sinkFunc   func(message.Message) error
	finishFunc func() ([]string, error)
)

func (c *decodeCommand) stdoutSink(w io.Writer) (sinkFunc, finishFunc) {
	enc := json.NewEncoder(w)
	return func(msg message.Message) error { return enc.Encode(msg) },
		func() ([]string, error) { return nil, nil }
}

func (c *decodeCommand) recorderSink(rc config.RecorderConfig) (sinkFunc, finishFunc) {
	rec := recorder.New(rc.OutputDir, rc.BufferSize, rc.RotateMegabytes, log)
	return rec.Record, func() ([]string, error) {
		files, err := rec.Close()
		for _, f := range files {
			log.Info().Str("file", f).Msg("Wrote log file")
		}
		return files, err
	}
}

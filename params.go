package main

import (
	"fmt"
	"io"
	"os"

	"github.com/john/ytchat/innertube"
	"github.com/john/ytchat/internal/config"
)

type paramsCommand struct {
	Continuation string `long:"continuation" required:"true" description:"continuation token from the previous response"`
	Referer      string `long:"referer" description:"page the chat is embedded in"`
}

// Execute implements flags.Commander.
func (c *paramsCommand) Execute([]string) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateClient(); err != nil {
		return err
	}
	return c.write(cfg, os.Stdout)
}

func (c *paramsCommand) write(cfg *config.Config, w io.Writer) error {
	url, err := innertube.GetLiveChatURL(cfg.EndpointQuery())
	if err != nil {
		return err
	}

	p := innertube.New(cfg.ClientContext())
	p.SetContinuation(c.Continuation)
	if c.Referer != "" {
		p.SetReferer(c.Referer)
	}
	body, err := p.Body()
	if err != nil {
		return err
	}

	log.Info().Str("url", url).Int("body_bytes", len(body)).Msg("Built get_live_chat request")
	if _, err := fmt.Fprintf(w, "%s\n", body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

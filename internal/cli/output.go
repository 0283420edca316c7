package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lucrnz/humanspan/internal/config"
	"github.com/lucrnz/humanspan/internal/logging"
	"github.com/lucrnz/humanspan/internal/util"
	"github.com/lucrnz/humanspan/pkg/humantime"
)

const (
	syntaxHuman = "human"
	syntaxGo    = "go"
)

// result is one evaluated input line.
type result struct {
	Input      string
	Language   humantime.Language
	Syntax     string
	Duration   humantime.Duration
	Components []humantime.Component // only for human syntax, when requested
}

type evaluator struct {
	lang       humantime.Language
	goSyntax   bool
	components bool
}

func (e evaluator) evaluate(ctx context.Context, text string) result {
	logger := logging.FromContext(ctx)
	res := result{Input: text, Language: e.lang, Syntax: syntaxHuman}

	if e.goSyntax {
		d, err := util.ParseGoDuration(text)
		if err == nil {
			res.Syntax = syntaxGo
			res.Duration = d
			return res
		}
		logger.Debug("go_syntax_rejected", "input", text, "error", err)
	}

	res.Duration = humantime.Parse(text, e.lang)
	if e.components {
		res.Components = humantime.Explain(text, e.lang)
	}
	if res.Duration == 0 {
		logger.Info("no_duration_found", "input", text, "language", e.lang.String())
	}
	return res
}

type printer struct {
	format  string
	out     io.Writer
	errOut  io.Writer
	explain bool
}

func (p *printer) print(res result) error {
	var err error
	switch p.format {
	case config.OutputTicks:
		_, err = fmt.Fprintln(p.out, res.Duration.Ticks())
	case config.OutputGo:
		_, err = fmt.Fprintln(p.out, res.Duration.String())
	case config.OutputJSON:
		err = json.NewEncoder(p.out).Encode(newJSONResult(res))
	default:
		_, err = fmt.Fprintln(p.out, util.HumanDuration(res.Duration))
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if p.explain {
		return p.writeExplain(res)
	}
	return nil
}

func (p *printer) writeExplain(res result) error {
	tw := tabwriter.NewWriter(p.errOut, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %q (%s, %s syntax)\n", res.Input, res.Language, res.Syntax)

	if res.Syntax == syntaxGo {
		fmt.Fprintf(tw, "total\t\t%s ticks\n", util.GroupDigits(res.Duration.Ticks()))
		return tw.Flush()
	}

	for _, c := range res.Components {
		token := c.Token
		if token == "" {
			token = "-"
		}
		switch {
		case errors.Is(c.Err, humantime.ErrNoMatch):
			fmt.Fprintf(tw, "%s\t%s\tno match\n", c.Unit, token)
		case c.Err != nil:
			fmt.Fprintf(tw, "%s\t%s\trejected: %v\n", c.Unit, token, c.Err)
		default:
			fmt.Fprintf(tw, "%s\t%s\t%s ticks\n", c.Unit, token, util.GroupDigits(c.Ticks.Ticks()))
		}
	}
	fmt.Fprintf(tw, "total\t\t%s ticks\n", util.GroupDigits(res.Duration.Ticks()))
	return tw.Flush()
}

type jsonComponent struct {
	Unit  string `json:"unit"`
	Token string `json:"token"`
	Ticks int64  `json:"ticks"`
	Error string `json:"error,omitempty"`
}

type jsonResult struct {
	Input      string          `json:"input"`
	Language   string          `json:"language"`
	Syntax     string          `json:"syntax"`
	Ticks      int64           `json:"ticks"`
	Duration   string          `json:"duration"`
	Text       string          `json:"text"`
	Components []jsonComponent `json:"components,omitempty"`
}

// newJSONResult keeps only the units that matched; unmatched ones carry no information.
func newJSONResult(res result) jsonResult {
	out := jsonResult{
		Input:    res.Input,
		Language: res.Language.String(),
		Syntax:   res.Syntax,
		Ticks:    res.Duration.Ticks(),
		Duration: res.Duration.String(),
		Text:     util.HumanDuration(res.Duration),
	}
	for _, c := range res.Components {
		if !c.Matched() {
			continue
		}
		jc := jsonComponent{Unit: c.Unit.String(), Token: c.Token, Ticks: c.Ticks.Ticks()}
		if c.Err != nil {
			jc.Error = c.Err.Error()
		}
		out.Components = append(out.Components, jc)
	}
	return out
}

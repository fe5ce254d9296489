package viewers

import (
	"context"
	"fmt"

	"github.com/filetug/estorage/pkg/chroma2tcell"
	"github.com/filetug/estorage/pkg/estorage"
	"github.com/filetug/estorage/pkg/fsutils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
)

var _ Previewer = (*TextPreviewer)(nil)

type TextPreviewer struct {
	*tview.TextView
	style    string
	maxBytes int
}

func NewTextPreviewer(style string, maxBytes int) *TextPreviewer {
	return &TextPreviewer{
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(true).
			SetScrollable(true),
		style:    style,
		maxBytes: maxBytes,
	}
}

func (p *TextPreviewer) Preview(ctx context.Context, file *estorage.File, queueUpdateDraw func(func())) {
	go func() {
		text, err := p.render(ctx, file)
		queueUpdateDraw(func() {
			if err != nil {
				p.showError(err.Error())
				return
			}
			p.Clear()
			p.SetTextColor(tview.Styles.PrimaryTextColor)
			p.SetText(text)
			p.ScrollToBeginning()
		})
	}()
}

func (p *TextPreviewer) Main() tview.Primitive {
	return p.TextView
}

// render reads the head of the file and colorizes it for a TextView.
func (p *TextPreviewer) render(ctx context.Context, file *estorage.File) (string, error) {
	data, err := p.readFile(ctx, file)
	if err != nil {
		return "", err
	}
	data, err = unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", file.Name(), err)
	}
	lexer := chroma2tcell.Match(file.Name())
	colorized, err := chroma2tcell.Colorize(string(data), p.style, lexer)
	if err != nil {
		return "", fmt.Errorf("failed to format %s: %w", file.Name(), err)
	}
	return colorized, nil
}

func (p *TextPreviewer) readFile(ctx context.Context, file *estorage.File) ([]byte, error) {
	r, err := file.Store().Open(ctx, file.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Path(), err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			zerolog.Ctx(ctx).Debug().Err(closeErr).Str("path", file.Path()).Msg("close failed")
		}
	}()
	data, err := fsutils.ReadData(r, p.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Path(), err)
	}
	return data, nil
}

func (p *TextPreviewer) showError(text string) {
	p.Clear()
	p.SetText(tview.Escape(text))
	p.SetTextColor(tcell.ColorRed)
}

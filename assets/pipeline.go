// Package assets delivers the effect's shader sources and texture. Loading
// is a fixed sequence: vertex source, fragment source, texture.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/richinsley/gomandelbulb/log"
)

var logger = log.New("assets")

var (
	// ErrOutOfOrder is returned when an asset is delivered in the wrong state.
	ErrOutOfOrder = errors.New("assets: delivered out of order")
	// ErrNotReady is returned when the effect is requested before every asset
	// has been delivered.
	ErrNotReady = errors.New("assets: effect is not ready")
)

// State is the readiness of a Pipeline.
type State int

const (
	AwaitingVertex State = iota
	AwaitingFragment
	AwaitingTexture
	Ready
)

func (s State) String() string {
	switch s {
	case AwaitingVertex:
		return "awaiting vertex"
	case AwaitingFragment:
		return "awaiting fragment"
	case AwaitingTexture:
		return "awaiting texture"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Effect is everything a session needs to load the effect.
type Effect struct {
	VertexSource   string
	FragmentSource string
	Texture        image.Image
}

// Pipeline collects the assets in order. The zero value awaits the vertex
// source.
type Pipeline struct {
	state  State
	effect Effect
}

// State returns the current readiness.
func (p *Pipeline) State() State { return p.state }

func (p *Pipeline) expect(s State, what string) error {
	if p.state != s {
		return fmt.Errorf("%w: got %s while %s", ErrOutOfOrder, what, p.state)
	}
	return nil
}

// SetVertex delivers the vertex source.
func (p *Pipeline) SetVertex(src string) error {
	if err := p.expect(AwaitingVertex, "vertex source"); err != nil {
		return err
	}
	if src == "" {
		return errors.New("assets: vertex source is empty")
	}
	p.effect.VertexSource = src
	p.state = AwaitingFragment
	return nil
}

// SetFragment delivers the fragment source.
func (p *Pipeline) SetFragment(src string) error {
	if err := p.expect(AwaitingFragment, "fragment source"); err != nil {
		return err
	}
	if src == "" {
		return errors.New("assets: fragment source is empty")
	}
	p.effect.FragmentSource = src
	p.state = AwaitingTexture
	return nil
}

// SetTexture delivers the texture image.
func (p *Pipeline) SetTexture(img image.Image) error {
	if err := p.expect(AwaitingTexture, "texture"); err != nil {
		return err
	}
	if img == nil {
		return errors.New("assets: texture is nil")
	}
	p.effect.Texture = img
	p.state = Ready
	return nil
}

// Effect returns the collected assets once the pipeline is Ready.
func (p *Pipeline) Effect() (*Effect, error) {
	if p.state != Ready {
		return nil, fmt.Errorf("%w: %s", ErrNotReady, p.state)
	}
	e := p.effect
	return &e, nil
}

// Refs name the three assets. See Loader for the accepted forms.
type Refs struct {
	Vertex   string
	Fragment string
	Texture  string
}

// Fetcher retrieves assets by reference.
type Fetcher interface {
	FetchText(ctx context.Context, ref string) (string, error)
	FetchImage(ctx context.Context, ref string) (image.Image, error)
}

// Load runs the pipeline to completion: vertex, then fragment, then texture.
// The first failure stops the sequence.
func Load(ctx context.Context, f Fetcher, refs Refs) (*Effect, error) {
	var p Pipeline

	vert, err := f.FetchText(ctx, refs.Vertex)
	if err != nil {
		return nil, fmt.Errorf("failed to load vertex shader %s: %w", refs.Vertex, err)
	}
	if err := p.SetVertex(vert); err != nil {
		return nil, err
	}
	logger.Debugf("vertex shader loaded from %s", refs.Vertex)

	frag, err := f.FetchText(ctx, refs.Fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to load fragment shader %s: %w", refs.Fragment, err)
	}
	if err := p.SetFragment(frag); err != nil {
		return nil, err
	}
	logger.Debugf("fragment shader loaded from %s", refs.Fragment)

	img, err := f.FetchImage(ctx, refs.Texture)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", refs.Texture, err)
	}
	if err := p.SetTexture(img); err != nil {
		return nil, err
	}
	logger.Infof("assets ready (texture %v)", img.Bounds().Size())

	return p.Effect()
}

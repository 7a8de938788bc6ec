package extract

import (
	"errors"
	"fmt"
)

// Strategy turns raw file bytes into prompt text.
type Strategy interface {
	Name() string
	Extract(data []byte) (string, error)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc struct {
	Label string
	Fn    func(data []byte) (string, error)
}

func (s StrategyFunc) Name() string { return s.Label }

func (s StrategyFunc) Extract(data []byte) (text string, err error) {
	// Third-party parsers may panic on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Fn(data)
}

// Chain tries each strategy in order and returns the first success. When all
// fail, the joined error names every attempt.
func Chain(strategies ...Strategy) Strategy {
	return chain(strategies)
}

type chain []Strategy

func (c chain) Name() string { return "chain" }

func (c chain) Extract(data []byte) (string, error) {
	var errs []error
	for _, strategy := range c {
		text, err := strategy.Extract(data)
		if err == nil {
			return text, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", strategy.Name(), err))
	}
	if len(errs) == 0 {
		return "", errors.New("no extraction strategy configured")
	}
	return "", errors.Join(errs...)
}

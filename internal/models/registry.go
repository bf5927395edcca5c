package models

import (
	"fmt"
	"sort"

	"github.com/san-kum/sticksim/internal/dynamo"
)

var scenes = map[string]func() Scene{
	"rope":   func() Scene { return NewRope() },
	"chain":  func() Scene { return NewChain() },
	"cloth":  func() Scene { return NewCloth() },
	"bridge": func() Scene { return NewBridge() },
	"box":    func() Scene { return NewBox() },
	"empty":  func() Scene { return NewEmpty() },
}

// Get returns a fresh scene with default dimensions.
func Get(name string) (Scene, error) {
	fn, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownScene, name)
	}
	return fn(), nil
}

func List() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

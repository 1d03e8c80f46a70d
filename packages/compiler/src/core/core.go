package core

import (
	"fmt"
	"strings"
)

// ChangeDetectionStrategy describes how a directive's view is checked for changes
type ChangeDetectionStrategy int

const (
	// ChangeDetectionStrategyCheckOnce checks the view once and then waits for an explicit mark
	ChangeDetectionStrategyCheckOnce ChangeDetectionStrategy = iota
	// ChangeDetectionStrategyChecked skips the view until it is marked CheckOnce again
	ChangeDetectionStrategyChecked
	// ChangeDetectionStrategyCheckAlways checks the view on every pass
	ChangeDetectionStrategyCheckAlways
	// ChangeDetectionStrategyDetached removes the view from the change detection tree
	ChangeDetectionStrategyDetached
	// ChangeDetectionStrategyOnPush checks the view only when its inputs change
	ChangeDetectionStrategyOnPush
	// ChangeDetectionStrategyDefault is CheckAlways for views that did not opt in to anything else
	ChangeDetectionStrategyDefault
)

// ChangeDetectionStrategyValues lists every strategy in ordinal order
var ChangeDetectionStrategyValues = []ChangeDetectionStrategy{
	ChangeDetectionStrategyCheckOnce,
	ChangeDetectionStrategyChecked,
	ChangeDetectionStrategyCheckAlways,
	ChangeDetectionStrategyDetached,
	ChangeDetectionStrategyOnPush,
	ChangeDetectionStrategyDefault,
}

var changeDetectionStrategyNames = [...]string{
	"CheckOnce",
	"Checked",
	"CheckAlways",
	"Detached",
	"OnPush",
	"Default",
}

// String returns the canonical name of the strategy
func (s ChangeDetectionStrategy) String() string {
	if s < 0 || int(s) >= len(changeDetectionStrategyNames) {
		return fmt.Sprintf("ChangeDetectionStrategy(%d)", int(s))
	}
	return changeDetectionStrategyNames[s]
}

// ParseChangeDetectionStrategy resolves a canonical name to its strategy
func ParseChangeDetectionStrategy(name string) (ChangeDetectionStrategy, error) {
	idx, err := lookupName("change detection strategy", changeDetectionStrategyNames[:], name)
	return ChangeDetectionStrategy(idx), err
}

// ChangeDetectionStrategyFromOrdinal resolves an ordinal to its strategy
func ChangeDetectionStrategyFromOrdinal(ordinal int) (ChangeDetectionStrategy, error) {
	idx, err := lookupOrdinal("change detection strategy", len(changeDetectionStrategyNames), ordinal)
	return ChangeDetectionStrategy(idx), err
}

// ViewEncapsulation represents the encapsulation strategy for component styles
type ViewEncapsulation int

const (
	// ViewEncapsulationEmulated rewrites styles so they only apply to the component's own view
	ViewEncapsulationEmulated ViewEncapsulation = iota
	// ViewEncapsulationNative relies on the platform's shadow DOM
	ViewEncapsulationNative
	// ViewEncapsulationNone applies styles globally
	ViewEncapsulationNone
)

// ViewEncapsulationValues lists every encapsulation mode in ordinal order
var ViewEncapsulationValues = []ViewEncapsulation{
	ViewEncapsulationEmulated,
	ViewEncapsulationNative,
	ViewEncapsulationNone,
}

var viewEncapsulationNames = [...]string{
	"Emulated",
	"Native",
	"None",
}

// String returns the canonical name of the encapsulation mode
func (e ViewEncapsulation) String() string {
	if e < 0 || int(e) >= len(viewEncapsulationNames) {
		return fmt.Sprintf("ViewEncapsulation(%d)", int(e))
	}
	return viewEncapsulationNames[e]
}

// ParseViewEncapsulation resolves a canonical name to its encapsulation mode
func ParseViewEncapsulation(name string) (ViewEncapsulation, error) {
	idx, err := lookupName("view encapsulation", viewEncapsulationNames[:], name)
	return ViewEncapsulation(idx), err
}

// ViewEncapsulationFromOrdinal resolves an ordinal to its encapsulation mode
func ViewEncapsulationFromOrdinal(ordinal int) (ViewEncapsulation, error) {
	idx, err := lookupOrdinal("view encapsulation", len(viewEncapsulationNames), ordinal)
	return ViewEncapsulation(idx), err
}

// LifecycleHooks identifies a lifecycle callback a directive implements
type LifecycleHooks int

const (
	LifecycleHooksOnInit LifecycleHooks = iota
	LifecycleHooksOnDestroy
	LifecycleHooksDoCheck
	LifecycleHooksOnChanges
	LifecycleHooksAfterContentInit
	LifecycleHooksAfterContentChecked
	LifecycleHooksAfterViewInit
	LifecycleHooksAfterViewChecked
)

// LifecycleHooksValues lists every hook in ordinal order
var LifecycleHooksValues = []LifecycleHooks{
	LifecycleHooksOnInit,
	LifecycleHooksOnDestroy,
	LifecycleHooksDoCheck,
	LifecycleHooksOnChanges,
	LifecycleHooksAfterContentInit,
	LifecycleHooksAfterContentChecked,
	LifecycleHooksAfterViewInit,
	LifecycleHooksAfterViewChecked,
}

var lifecycleHooksNames = [...]string{
	"OnInit",
	"OnDestroy",
	"DoCheck",
	"OnChanges",
	"AfterContentInit",
	"AfterContentChecked",
	"AfterViewInit",
	"AfterViewChecked",
}

// String returns the canonical name of the hook
func (h LifecycleHooks) String() string {
	if h < 0 || int(h) >= len(lifecycleHooksNames) {
		return fmt.Sprintf("LifecycleHooks(%d)", int(h))
	}
	return lifecycleHooksNames[h]
}

// ParseLifecycleHooks resolves a canonical name to its hook
func ParseLifecycleHooks(name string) (LifecycleHooks, error) {
	idx, err := lookupName("lifecycle hook", lifecycleHooksNames[:], name)
	return LifecycleHooks(idx), err
}

// LifecycleHooksFromOrdinal resolves an ordinal to its hook
func LifecycleHooksFromOrdinal(ordinal int) (LifecycleHooks, error) {
	idx, err := lookupOrdinal("lifecycle hook", len(lifecycleHooksNames), ordinal)
	return LifecycleHooks(idx), err
}

func lookupName(kind string, names []string, name string) (int, error) {
	for i, candidate := range names {
		if candidate == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown %s %q, expected one of %s", kind, name, strings.Join(names, ", "))
}

func lookupOrdinal(kind string, size int, ordinal int) (int, error) {
	if ordinal < 0 || ordinal >= size {
		return -1, fmt.Errorf("%s ordinal %d out of range [0, %d)", kind, ordinal, size)
	}
	return ordinal, nil
}

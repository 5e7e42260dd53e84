package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrNoIncludes indicates no source patterns were configured
	ErrNoIncludes = errors.New("no include patterns")

	// ErrInvalidGlob indicates a path pattern that does not compile
	ErrInvalidGlob = errors.New("invalid glob pattern")

	// ErrInvalidPattern indicates an example handler regex that does not compile
	ErrInvalidPattern = errors.New("invalid example handler pattern")

	// ErrEmptyHandlerName indicates an example handler without a name
	ErrEmptyHandlerName = errors.New("empty example handler name")

	// ErrEmptyOutputDir indicates a missing output directory
	ErrEmptyOutputDir = errors.New("empty output directory")

	// ErrEmptyCatalogPath indicates a missing catalog path
	ErrEmptyCatalogPath = errors.New("empty catalog path")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	for _, validate := range []func(*Config) error{
		validatePaths,
		validateParse,
		validateOutput,
		validateStorage,
	} {
		if err := validate(cfg); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validatePaths(cfg *Config) error {
	var errs []error

	if len(cfg.Paths.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrNoIncludes))
	}
	for _, pattern := range append(append([]string{}, cfg.Paths.Include...), cfg.Paths.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidGlob, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateParse(cfg *Config) error {
	var errs []error

	for i, h := range cfg.Parse.ExampleHandlers {
		if strings.TrimSpace(h.Name) == "" {
			errs = append(errs, fmt.Errorf("%w: example_handlers[%d]", ErrEmptyHandlerName, i))
		}
		if _, err := regexp.Compile(h.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, h.Pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return fmt.Errorf("%w: output.dir is required", ErrEmptyOutputDir)
	}
	return nil
}

func validateStorage(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Catalog.Path) == "" {
		errs = append(errs, fmt.Errorf("%w: catalog.path is required", ErrEmptyCatalogPath))
	}
	if cfg.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMS))
	}
	if cfg.Cache.Capacity < 0 {
		errs = append(errs, fmt.Errorf("%w: capacity cannot be negative, got %d", ErrInvalidCacheSettings, cfg.Cache.Capacity))
	}
	if cfg.Cache.TTLSeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: ttl_seconds cannot be negative, got %d", ErrInvalidCacheSettings, cfg.Cache.TTLSeconds))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear
// formatting. The result still matches every joined sentinel with errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return &validationError{msg: "validation failed:\n  - " + strings.Join(msgs, "\n  - "), errs: errs}
}

type validationError struct {
	msg  string
	errs []error
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }

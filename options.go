package tarfix

import "github.com/pkg/errors"

// WithCompression provides the compression algorithm of tarballs.
func WithCompression(algorithm Algorithm) Option {
	return func(i private) error {
		if algorithm.String() == unknownValue {
			return ErrUnknownValue
		}
		switch i := i.(type) {
		case *Composer:
			i.algorithm = algorithm
		case *Generator:
			i.algorithm = algorithm
		default:
			return ErrInapplicableOption
		}
		return nil
	}
}

// WithLevel provides the compression level of tarballs.
func WithLevel(level Level) Option {
	return func(i private) error {
		if level.String() == unknownValue {
			return ErrUnknownValue
		}
		switch i := i.(type) {
		case *Composer:
			i.level = level
		case *Generator:
			i.level = level
		default:
			return ErrInapplicableOption
		}
		return nil
	}
}

// WithoutTerminator makes the Composer skip the end-of-archive marker on Close.
func WithoutTerminator() Option {
	return func(i private) error {
		c, ok := i.(*Composer)
		if !ok {
			return ErrInapplicableOption
		}
		c.terminate = false
		return nil
	}
}

// WithFixtures restricts generation to the named fixtures, in catalog order.
func WithFixtures(names ...string) Option {
	return func(i private) error {
		g, ok := i.(*Generator)
		if !ok {
			return ErrInapplicableOption
		}
		for _, name := range names {
			if _, err := Lookup(name); err != nil {
				return err
			}
		}
		g.only = append(g.only, names...)
		return nil
	}
}

// WithManifest writes a manifest of the uncompressed tarball digests under name after generation.
func WithManifest(name string) Option {
	return func(i private) error {
		if err := validateFixtureName(name); err != nil {
			return errors.WithMessage(err, "invalid manifest name")
		}
		g, ok := i.(*Generator)
		if !ok {
			return ErrInapplicableOption
		}
		g.manifest = name
		return nil
	}
}

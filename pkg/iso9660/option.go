package iso9660

import "github.com/rstms/iso9660ro/pkg/logging"

// Options configures Open. Open starts from defaults that prefer Joliet
// when present, discard log output, and bound the mount scan at 16
// descriptors, matching the defaults the teacher's OpenOptions used for the
// equivalent flags; the zero value of Options is not those defaults.
type Options struct {
	PreferJoliet bool
	Logger       *logging.Logger
	MountBound   int
}

// Option mutates Options; the functional-options pattern used throughout
// the teacher's own Open call.
type Option func(*Options)

// WithJolietPreferred selects whether a Joliet Supplementary descriptor,
// when present, roots the filesystem instead of the Primary descriptor.
// Defaults to true.
func WithJolietPreferred(prefer bool) Option {
	return func(o *Options) {
		o.PreferJoliet = prefer
	}
}

// WithLogger attaches a logger; the default discards all output.
func WithLogger(logger *logging.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMountBound overrides the sane limit on volume descriptors read during
// mount before giving up with InvalidFs. Defaults to 16.
func WithMountBound(bound int) Option {
	return func(o *Options) {
		o.MountBound = bound
	}
}

func defaultOptions() *Options {
	return &Options{
		PreferJoliet: true,
		Logger:       logging.DefaultLogger(),
		MountBound:   16,
	}
}

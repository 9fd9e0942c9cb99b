package moderation

type Option func(*Options)

type Options struct {
	ImageTaxonomy Taxonomy
	TextTaxonomy  Taxonomy
	Policies      map[SignalKind]SignalPolicy
}

func WithImageTaxonomy(t Taxonomy) Option {
	return func(o *Options) {
		o.ImageTaxonomy = t
	}
}

func WithTextTaxonomy(t Taxonomy) Option {
	return func(o *Options) {
		o.TextTaxonomy = t
	}
}

func WithSignalPolicy(kind SignalKind, policy SignalPolicy) Option {
	return func(o *Options) {
		o.Policies[kind] = policy
	}
}

func DefaultOptions() Options {
	return Options{
		ImageTaxonomy: DefaultImageTaxonomy(),
		TextTaxonomy:  DefaultTextTaxonomy(),
		Policies:      DefaultSignalPolicies(),
	}
}

func ApplyOptions(options ...Option) Options {
	applied := DefaultOptions()
	for _, option := range options {
		option(&applied)
	}
	return applied
}

func (o Options) policy(kind SignalKind) SignalPolicy {
	if p, ok := o.Policies[kind]; ok {
		return p
	}
	return PolicyMandatory
}

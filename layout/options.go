package layout

// Options 汇总可一次性应用到 Text 的排版参数。
type Options struct {
	Box       Box
	Leading   int
	HAlign    HAlign
	VAlign    VAlign
	Justified bool
}

// Apply sets every option on t. Unchanged values leave the cache clean.
func (t *Text) Apply(o Options) {
	t.setBox(o.Box)
	t.SetLeading(o.Leading)
	t.SetHorizontalAlignment(o.HAlign)
	t.SetVerticalAlignment(o.VAlign)
	t.SetJustified(o.Justified)
}

// Options returns the current layout parameters.
func (t *Text) Options() Options {
	return Options{Box: t.box, Leading: t.leading, HAlign: t.halign, VAlign: t.valign, Justified: t.justified}
}

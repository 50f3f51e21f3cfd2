package fix

// Option mutates fix during construction.
type Option func(*Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app Applicability) Option {
	return func(f *Fix) {
		f.Applicability = app
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *Fix) {
		f.ID = id
	}
}

func applyOptions(f Fix, opts []Option) Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// InsertText creates fix that inserts text at offset.
func InsertText(title string, at int, text string, opts ...Option) Fix {
	fix := Fix{
		Title:         title,
		Applicability: AlwaysSafe,
		Edits:         []Edit{{Offset: at, NewText: text}},
	}
	return applyOptions(fix, opts)
}

// DeleteSpan removes length bytes at offset. expect guards the removed text.
func DeleteSpan(title string, offset, length int, expect string, opts ...Option) Fix {
	fix := Fix{
		Title:         title,
		Applicability: AlwaysSafe,
		Edits:         []Edit{{Offset: offset, Length: length, OldText: expect}},
	}
	return applyOptions(fix, opts)
}

// Package dialect guesses whether a stylesheet without a telling file name is
// plain CSS, SCSS or LESS.
//
// Evidence is collected from a CSS-mode token stream, so guessing never
// depends on the grammar being guessed. The result only picks a dialect for
// parsing; it never produces diagnostics by itself.
package dialect

// Package prompt is the terminal front end for a tourneyform session. A
// Runner asks for a collection and then one value per active field, applying
// the constraint of each field's widget kind before the value reaches the
// form.
package prompt

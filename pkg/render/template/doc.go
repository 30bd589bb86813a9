// Package template holds the seam between preview renderers and the template
// engine that fills their pages.
package template

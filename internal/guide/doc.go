// Package guide renders the post-install, tips and deployment guides.
//
// Guides are markdown templates embedded per language under templates/.
// They are filled from the skill catalog with text/template and printed
// through glamour.
package guide

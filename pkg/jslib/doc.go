// Package jslib is the registry of client-side libraries that templates can
// pull in with <require file="NAME"/>.
//
// A Registry is built once and never changes afterwards, so it can be shared
// freely between concurrent renders. Default returns the built-in set:
//
//	lib/neonpulse  reactive signals and DOM bindings exposed as window.neonPulse
//
// Sources are stored clean; Get runs them through an obfuscator on the way out.
package jslib

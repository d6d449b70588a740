// Package obfuscator transforms first-party JavaScript bundles before they
// are shipped to the browser.
//
// Three methods are available:
//
//   - MethodMultiLayer: strips comments and whitespace, renames a fixed set of
//     generic identifiers, re-encodes double-quoted string literals, rewrites
//     small integer literals as equivalent expressions, then splits the result
//     into a self-loading chunked script.
//   - MethodSplit: only the chunked loader.
//   - MethodNone: passthrough.
//
// Passes operate on code only; string, template and regular expression
// literals are kept intact, so the transformed program behaves like the
// original. Blank input always yields an empty string.
//
// Number rewriting picks one of four equivalent forms at random. Use
// WithSeed or WithRand for reproducible output, or WithoutNumberMangling to
// turn the pass off:
//
//	o := obfuscator.New(obfuscator.WithSeed(42))
//	out := o.Apply(src, obfuscator.MethodMultiLayer)
package obfuscator

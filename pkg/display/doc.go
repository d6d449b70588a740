// Package display locates .hyr templates inside an application tree.
//
// Templates live under ROOT/<app>/display/, where ROOT defaults to
// "adapter-intake". A logical name such as "home/home" matches any
// ROOT/*/display/**/home/home.hyr; the first match in lexical order wins.
package display

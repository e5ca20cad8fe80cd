// Package sprintf implements a C-style string formatter with the
// loose argument coercion rules of a scripting host.
//
// Directives have the form %[argIndex$][flags][width][.precision]type
// where type is one of s c b o x X u i d f F e E g G p P n. Arguments
// are consumed left to right unless an explicit 1-based index is
// given, and * pulls width or precision from the argument list.
// Unrecognized directives pass through verbatim.
package sprintf

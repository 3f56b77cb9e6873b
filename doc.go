// Package jsonscan scans JSON values one at a time out of a code point
// buffer and encodes text as JSON string literals.
//
// Scanner.Scan recognizes the value at a position and reports where it
// ends; objects and arrays are left to a ContainerBuilder, of which
// Decoder is the stock one. Decoded strings keep unpaired surrogates, so
// encoding one again loses nothing.
//
// Every position is an index into a Buffer, counted in code points.
package jsonscan

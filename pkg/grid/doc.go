// Package grid provides the dense 2D cell array that backs every dungeon
// generation pass: a row-major byte-per-cell terrain buffer, bulk fill
// operations, and flood-fill connectivity helpers.
//
// Grid operations are total over the declared width/height: reads of an
// out-of-bounds coordinate return a zero value (or false), writes to an
// out-of-bounds coordinate are silent no-ops. No Grid method ever panics
// on a bad coordinate.
package grid

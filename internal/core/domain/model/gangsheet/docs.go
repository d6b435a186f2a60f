// Package gangsheet models a gang sheet batch: one physical print sheet
// carrying several small jobs side by side.
//
// The fill rate and waste of a batch are computed once, from the exact set of
// member jobs, when the batch is created. Membership never changes afterwards;
// a different job set means a new batch. The one later mutation is the
// completion stamp, set once when the last member comes off the printer.
package gangsheet

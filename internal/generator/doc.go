// Package generator produces a report for one vehicle.
//
// Generation runs a fixed sequence of steps over a Job: the generation gate
// (required fields, then instrument expiry), rendering of the form, saving
// the report to the history and flagging the vehicle as generated. The first
// failing step stops the sequence; nothing is saved when a gate refuses.
package generator

// Package generator builds candidate tracking numbers.
//
// A tracking number is 16 characters over A-Z0-9: an 8 digit base-36
// encoding of the low 40 bits of the epoch millisecond (least significant
// digit first) followed by 8 symbols drawn from a secure random source.
// Candidates are not chronologically sortable and the time field wraps
// roughly every 89 years.
package generator

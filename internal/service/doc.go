// Package service holds the profile and settings stores. Both keep an
// in-memory copy of their slot and write the whole value back on every
// change, so the slot and the copy never disagree.
package service

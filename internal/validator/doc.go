// Package validator compares an actual response against its expected fixture.
package validator

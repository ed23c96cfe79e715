// Package repository is the data access layer. Every repo wraps the
// shared gorm handle and translates gorm errors into the sentinel
// values handlers compare against with errors.Is.
package repository

import "errors"

var (
	ErrEmailExists      = errors.New("email already exists")
	ErrSlugExists       = errors.New("slug already exists")
	ErrNameExists       = errors.New("name already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrTokenNotFound    = errors.New("refresh token not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrLocationInUse    = errors.New("location still has listings")
	ErrListingNotFound  = errors.New("listing not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrFacilityNotFound = errors.New("facility not found")
	ErrRuleNotFound     = errors.New("rule not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrMediaNotFound    = errors.New("media asset not found")
	ErrNoAvailability   = errors.New("no availability for the requested dates")
)

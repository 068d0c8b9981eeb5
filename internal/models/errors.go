package models

import "errors"

// Error constants for registrant and photo operations
var (
	ErrRegistrantNotFound = errors.New("registrant not found")

	ErrNotAnImage    = errors.New("file is not an image")
	ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")

	ErrCameraPermission = errors.New("camera access was denied")
	ErrCameraNotFound   = errors.New("no camera device was found")
	ErrCameraBusy       = errors.New("camera is already in use by another application")
)

package domain

import "errors"

var (
	ErrImageDecode      = errors.New("image is not a decodable raster image")
	ErrRemoteExtraction = errors.New("remote vision extraction failed")
	ErrLocalRecognition = errors.New("local text recognition failed")
	ErrMissingAPIKey    = errors.New("vision API key is not configured")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrLedgerAppend        = errors.New("appending to parcel ledger failed")
	ErrArchiveFailed       = errors.New("archiving parcel image failed")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

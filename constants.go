package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpSavePNG
	FileOpSaveTXT
)

type ConfirmAction int

const (
	ConfirmShrink ConfirmAction = iota
	ConfirmClear
	ConfirmQuit
	ConfirmOverwriteFile
	ConfirmReload
)

const (
	headerLines = 1
	statusLines = 1

	// PNG cell size bounds in pixels, before zoom
	minPNGCell  = 15.0
	maxPNGCell  = 30.0
	pngGridSpan = 600.0
)

var defaultSizes = []int{5, 10, 15, 20, 25, 30, 40, 50}

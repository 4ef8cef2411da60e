package command

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
	exitCodeExist   = 2

	exitCodeNotExist = 4
)

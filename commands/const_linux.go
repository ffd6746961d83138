package commands

const (
	_etc = "/usr/local/etc/uhppoted"

	DEFAULT_CREDENTIALS = _etc + "/usercheck/.google/secrets.yaml"

	OPEN = "xdg-open"
)

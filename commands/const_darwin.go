package commands

const (
	_etc = "/usr/local/etc/com.github.uhppoted"

	DEFAULT_CREDENTIALS = _etc + "/usercheck/.google/secrets.yaml"

	OPEN = "open"
)

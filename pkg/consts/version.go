package consts

// App version constants
const (
	AppName        = "dfimage"
	AppVersionName = "Archaeologist"
)

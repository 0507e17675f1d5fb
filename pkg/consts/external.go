package consts

// Other constants that external users/consumers will see
const (
	//default file name for the reverse engineered Dockerfile
	ReversedDockerfile = "Dockerfile.reversed"
)

package docs

//go:generate swag init -g cmd/main.go -d .. -o . --outputTypes go

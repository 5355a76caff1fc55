package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           traind monitor API
// @version         1.0
// @description     Read-only HTTP API observing a traind training run.
//
// @contact.name   traind maintainers
// @contact.url    https://github.com/your-org/traind
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http

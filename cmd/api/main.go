package main

// @title Forkable Menu API
// @version 1.0
// @description Summarises the lunch ordered on Forkable for today, or tomorrow after the cutoff hour.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:9089
// @BasePath /
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
import (
	_ "github.com/gautamg795/forkable-menu/docs"
	protocol "github.com/gautamg795/forkable-menu/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Println(err)
	}
}

package main

import (
	"fmt"

	"whispr/feedback-api/app"
	"whispr/feedback-api/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	router, err := app.NewRouter()
	if err != nil {
		panic(err)
	}

	addr := fmt.Sprintf(":%d", viper.GetInt("host.port"))

	zap.L().Info("Server starting", zap.String("addr", addr))

	if viper.GetBool("host.ssl_enabled") {
		err = router.RunTLS(addr,
			viper.GetString("host.ssl_certificate_path"),
			viper.GetString("host.ssl_certificate_key_path"))
	} else {
		err = router.Run(addr)
	}
	if err != nil {
		panic(err)
	}
}

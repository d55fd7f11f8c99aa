package main

import (
	"DocTools/Constants"
	"DocTools/Controllers"
	"DocTools/CronJobs"
	"DocTools/Messaging"
	"DocTools/Models"
	"DocTools/Routes"
	"DocTools/SSE"
	"DocTools/Worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	Models.ConnectDataBase()

	handle := Messaging.Setup(Constants.FirebaseConfig)
	worker := Worker.New(handle, SSE.Hub)
	worker.Start()
	defer worker.Terminate()

	Controllers.MessagingHandle = handle
	Controllers.PushWorker = worker

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://easyjpgtopdf.com", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Push-Secret"},
		AllowCredentials: true,
	},
	))
	Routes.ConfigRoutes(router)

	maintenance := CronJobs.NewNotificationMaintenance(SSE.Hub)
	scheduler := maintenance.StartMaintenanceCron()
	_ = scheduler

	router.Run(":3005")
}

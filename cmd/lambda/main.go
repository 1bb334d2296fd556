package main

import (
	"context"
	"log"
	"time"

	"tournament-backend/infrastructure/config"
	"tournament-backend/infrastructure/di"
	"tournament-backend/infrastructure/messaging"
	"tournament-backend/infrastructure/persistence"
	"tournament-backend/interfaces/http/rest"
	"tournament-backend/interfaces/http/rest/controllers"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	// chiLambda wraps the Chi router for AWS Lambda integration
	chiLambda *chiadapter.ChiLambdaV2

	// container holds the booted composition root
	container *di.Container

	// coldStart tracks whether this is a cold start invocation
	coldStart = true

	// coldStartTime records when the cold start began
	coldStartTime time.Time
)

// init runs during cold start. The full composition root is booted here so
// wiring failures kill the function before it serves traffic.
func init() {
	coldStartTime = time.Now()
	log.Println("Lambda cold start initiated")

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	bootstrapper := di.NewBootstrapper(di.BootMode(cfg.BootMode), logger)

	if err := bootstrapper.RegisterServices(
		di.AddLogger(logger),
		persistence.AddRepositories(cfg),
		persistence.AddQueries(cfg),
		messaging.AddEventPublisher(cfg),
	); err != nil {
		log.Fatalf("Failed to register services: %v", err)
	}

	if err := bootstrapper.RegisterControllers(controllers.AddControllers(cfg)); err != nil {
		log.Fatalf("Failed to register controllers: %v", err)
	}

	container, err = bootstrapper.Boot(ctx)
	if err != nil {
		log.Fatalf("Failed to boot composition root: %v", err)
	}

	router := rest.NewRouter(container, cfg)
	handler, err := router.Setup(ctx)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	chiRouter, ok := handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)

	log.Printf("Lambda cold start completed in %v", time.Since(coldStartTime))
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := chiLambda.ProxyWithContextV2(ctx, req)

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}

	if coldStart {
		resp.Headers["X-Cold-Start"] = "true"
		resp.Headers["X-Cold-Start-Duration"] = time.Since(coldStartTime).String()
		coldStart = false
	} else {
		resp.Headers["X-Cold-Start"] = "false"
	}

	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}

	if resp.StatusCode >= 400 {
		container.Logger.Error("Lambda error response",
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("request_id", req.RequestContext.RequestID),
		)
	}

	return resp, err
}

func main() {
	lambda.Start(Handler)
}

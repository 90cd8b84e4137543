// Package grpc exposes the backend services over gRPC with the JSON codec
// from internal/rpc.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/pokodex/internal/logging"
	"github.com/dmitrijs2005/pokodex/internal/rpc"
	"github.com/dmitrijs2005/pokodex/internal/server/models"
	"github.com/dmitrijs2005/pokodex/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	SignUp(ctx context.Context, email, password, tempUserID string) (*models.User, *services.TokenPair, error)
	SignIn(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
}

type FavoritesService interface {
	Add(ctx context.Context, callerID, actorID string, f *models.Favorite) (*models.Favorite, error)
	Remove(ctx context.Context, callerID, actorID, name string) (int64, error)
	Get(ctx context.Context, callerID, actorID, name string) (*models.Favorite, error)
	List(ctx context.Context, callerID, actorID string, from, to int) ([]*models.Favorite, int, error)
	Migrate(ctx context.Context, callerID, tempUserID, userID string) (int64, error)
}

type GRPCServer struct {
	address   string
	users     UserService
	favorites FavoritesService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us UserService, fs FavoritesService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		favorites: fs,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds the grpc.Server with the interceptor chain and the
// Pokodex service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	rpc.RegisterPokodexServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	return srv.Serve(listen)
}

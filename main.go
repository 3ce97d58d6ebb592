package main

import (
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/catalog"
	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/config"
	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/coupon"
)

const Domain = "cart"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cat, err := catalog.Load(cfg.MenuPath)
	if err != nil {
		logger.Fatal("failed to load menu", zap.String("path", cfg.MenuPath), zap.Error(err))
	}

	coupons, err := coupon.NewBook(cat.Coupons())
	if err != nil {
		logger.Fatal("failed to load coupons", zap.Error(err))
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		logger.Fatal("failed to listen", zap.String("port", cfg.Port), zap.Error(err))
	}

	srv, err := newServer(cat, coupons, cfg.Pricing(), cfg.MaxSessions, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}
	s := newGRPCServer(srv)

	logger.Info("cart server started",
		zap.String("domain", Domain),
		zap.String("port", cfg.Port),
		zap.Int("menu_items", cat.Len()),
		zap.Int("coupons", coupons.Len()),
		zap.Int("max_sessions", cfg.MaxSessions),
		zap.Int64("delivery_fee", cfg.DeliveryFee),
		zap.Stringer("tax_rate", cfg.TaxRate),
	)

	if err := s.Serve(lis); err != nil {
		logger.Fatal("failed to serve", zap.Error(err))
	}
}

package logic

func reduceClearCart() Cart {
	return EmptyCart()
}

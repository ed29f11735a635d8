package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/stockdesk/stockdesk/internal/aggregate"
	"github.com/stockdesk/stockdesk/internal/app"
	"github.com/stockdesk/stockdesk/internal/guard"
	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/rbac"
)

func newProductsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "List and manage products",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List products",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, sess, err := c.enter(cmd, guard.PathProducts)
				if err != nil {
					return err
				}
				return c.listProducts(cmd, a, sess.User.Role)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				a, _, err := c.enter(cmd, guard.PathProducts)
				if err != nil {
					return err
				}
				p, err := a.Resources.Products.Get(cmd.Context(), id)
				if err != nil {
					return explain(err)
				}
				return c.showProduct(cmd, p)
			},
		},
		newProductWriteCmd(c, false),
		newProductWriteCmd(c, true),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return c.mutate(cmd, guard.PathProducts, rbac.Products, rbac.ActionDelete,
					func(a *app.App) (string, error) {
						return fmt.Sprintf("Deleted product %d", id), a.Resources.Products.Delete(cmd.Context(), id)
					},
					func(a *app.App, role models.Role) error { return c.listProducts(cmd, a, role) })
			},
		},
		&cobra.Command{
			Use:   "upload <image-file>",
			Short: "Upload a product image and print its URL",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, sess, err := c.enter(cmd, guard.PathProducts)
				if err != nil {
					return err
				}
				if err := a.Policy.Require(sess.User.Role, rbac.Products, rbac.ActionEdit); err != nil {
					return err
				}
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				url, err := a.Resources.Products.UploadImage(cmd.Context(), filepath.Base(args[0]), f)
				if err != nil {
					return explain(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), url)
				return nil
			},
		},
	)
	return cmd
}

type productFlags struct {
	name, description, sku, barcode, image, price string
	quantity, categoryID, supplierID              int
}

// newProductWriteCmd builds "create" or "update <id>". Update starts from
// the stored product and applies only the flags that were given.
func newProductWriteCmd(c *cli, update bool) *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
	}
	action := rbac.ActionCreate
	if update {
		cmd.Use, cmd.Short, cmd.Args = "update <id>", "Update a product", cobra.ExactArgs(1)
		action = rbac.ActionEdit
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		id := 0
		if update {
			var err error
			if id, err = parseID(args[0]); err != nil {
				return err
			}
		} else if f.name == "" {
			return fmt.Errorf("--name is required")
		}
		return c.mutate(cmd, guard.PathProducts, rbac.Products, action,
			func(a *app.App) (string, error) {
				var in models.ProductInput
				if update {
					cur, err := a.Resources.Products.Get(cmd.Context(), id)
					if err != nil {
						return "", err
					}
					in = models.ProductInput{
						Name: cur.Name, Description: cur.Description, SKU: cur.SKU, Barcode: cur.Barcode,
						ImageURL: cur.ImageURL, Price: cur.Price, Quantity: cur.Quantity,
						CategoryID: cur.CategoryID, SupplierID: cur.SupplierID,
					}
				}
				if err := f.apply(cmd, &in); err != nil {
					return "", err
				}
				if update {
					p, err := a.Resources.Products.Update(cmd.Context(), id, in)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Updated product %d", p.ID), nil
				}
				p, err := a.Resources.Products.Create(cmd.Context(), in)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Created product %d", p.ID), nil
			},
			func(a *app.App, role models.Role) error { return c.listProducts(cmd, a, role) })
	}

	cmd.Flags().StringVar(&f.name, "name", "", "Product name")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.sku, "sku", "", "Stock keeping unit")
	cmd.Flags().StringVar(&f.barcode, "barcode", "", "Barcode")
	cmd.Flags().StringVar(&f.image, "image-url", "", "Image URL (see 'products upload')")
	cmd.Flags().StringVar(&f.price, "price", "", "Unit price")
	cmd.Flags().IntVar(&f.quantity, "quantity", 0, "Quantity in stock")
	cmd.Flags().IntVar(&f.categoryID, "category-id", 0, "Category id")
	cmd.Flags().IntVar(&f.supplierID, "supplier-id", 0, "Supplier id")
	return cmd
}

func (f *productFlags) apply(cmd *cobra.Command, in *models.ProductInput) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = f.name
	}
	if flags.Changed("description") {
		in.Description = f.description
	}
	if flags.Changed("sku") {
		in.SKU = f.sku
	}
	if flags.Changed("barcode") {
		in.Barcode = f.barcode
	}
	if flags.Changed("image-url") {
		in.ImageURL = f.image
	}
	if flags.Changed("price") {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", f.price, err)
		}
		in.Price = price
	}
	if flags.Changed("quantity") {
		in.Quantity = f.quantity
	}
	if p := changedInt(cmd, "category-id", f.categoryID); p != nil {
		in.CategoryID = p
	}
	if p := changedInt(cmd, "supplier-id", f.supplierID); p != nil {
		in.SupplierID = p
	}
	return nil
}

func (c *cli) listProducts(cmd *cobra.Command, a *app.App, role models.Role) error {
	list, err := a.Views.Products(cmd.Context(), role)
	if err != nil {
		return explain(err)
	}
	m := c.money()
	threshold := a.Views.LowThreshold()
	return c.render(cmd.OutOrStdout(), list, func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tSKU\tCATEGORY\tPRICE\tQUANTITY\tSTATUS")
		for _, p := range list.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
				p.ID, p.Name, orDash(p.SKU), orDash(p.CategoryName), m.format(p.Price), p.Quantity,
				aggregate.Classify(p.Quantity, threshold))
		}
	})
}

func (c *cli) showProduct(cmd *cobra.Command, p *models.Product) error {
	m := c.money()
	return c.render(cmd.OutOrStdout(), p, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "ID:\t%d\n", p.ID)
		fmt.Fprintf(w, "Name:\t%s\n", p.Name)
		fmt.Fprintf(w, "Description:\t%s\n", orDash(p.Description))
		fmt.Fprintf(w, "SKU:\t%s\n", orDash(p.SKU))
		fmt.Fprintf(w, "Barcode:\t%s\n", orDash(p.Barcode))
		fmt.Fprintf(w, "Category:\t%s\n", orDash(p.CategoryName))
		fmt.Fprintf(w, "Price:\t%s\n", m.format(p.Price))
		fmt.Fprintf(w, "Quantity:\t%d\n", p.Quantity)
		fmt.Fprintf(w, "Value:\t%s\n", m.format(aggregate.Value(*p)))
		fmt.Fprintf(w, "Image:\t%s\n", orDash(p.ImageURL))
	})
}
